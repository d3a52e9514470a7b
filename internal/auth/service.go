package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Service resolves credentials through a chain of providers.
type Service struct {
	providers []Provider
	cache     *Cache
}

// NewService creates a new auth service. cache may be nil.
func NewService(cache *Cache, providers ...Provider) *Service {
	return &Service{
		providers: providers,
		cache:     cache,
	}
}

// Providers returns the names of the configured providers in resolution order.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}

	return names
}

// Resolve returns the identity of an Authorization header value, nil when the header is
// absent or no provider accepts the credential.
func (s *Service) Resolve(ctx context.Context, header string) *Identity {
	cred, ok := ParseAuthorization(header)
	if !ok {
		return nil
	}

	if s.cache != nil {
		if identity := s.cache.Get(cred); identity != nil {
			return identity
		}
	}

	for _, p := range s.providers {
		identity, err := p.Verify(ctx, cred)
		if errors.Is(err, ErrUnsupportedCredential) {
			continue
		}

		if err != nil {
			log.Debug().Err(err).Str("provider", p.Name()).Msg("credential rejected")
			continue
		}

		if s.cache != nil && cacheable(p) {
			s.cache.Set(cred, identity)
		}

		return identity
	}

	return nil
}
