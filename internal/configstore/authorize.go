package configstore

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/db/controller/user"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

// RequireAdmin returns the caller's user record when it may administrate settings.
// A missing identity fails with KindUnauthenticated before the store is touched;
// an unknown user or a user without the admin role or super admin flag fails with KindForbidden.
func (s *Store) RequireAdmin(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	return s.requireAdmin(ctx, identity, KindForbidden)
}

// requireAdmin is RequireAdmin with a configurable kind for unknown users.
func (s *Store) requireAdmin(ctx context.Context, identity *auth.Identity, missingUser Kind) (*models.User, error) {
	if identity == nil || identity.TokenIdentifier == "" {
		return nil, newError(KindUnauthenticated, ErrUnauthenticated.Message, nil)
	}

	u, err := user.GetByToken(s.db.WithContext(ctx), identity.TokenIdentifier)
	if errors.Is(err, user.ErrUserNotFound) {
		log.Warn().Str("token_identifier", identity.TokenIdentifier).Msg("settings write by unknown user")

		if missingUser == KindNotFound {
			return nil, newError(KindNotFound, ErrNotFound.Message, err)
		}

		return nil, newError(KindForbidden, ErrForbidden.Message, err)
	}

	if err != nil {
		return nil, s.internal(err, "failed to resolve user")
	}

	if !u.IsAdmin() {
		log.Warn().Uint64("user_id", u.ID).Str("role", u.Role).Msg("user lacks settings admin capability")

		return nil, newError(KindForbidden, ErrForbidden.Message, nil)
	}

	return u, nil
}
