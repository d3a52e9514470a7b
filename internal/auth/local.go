package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/db/controller/user"
)

const apiKeyPrefix = "sk."

// LocalProvider verifies API keys issued by the CLI. A key has the form
// "sk.<base64url token identifier>.<secret>"; only the Argon2id hash of the secret is stored.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local API key provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// FormatAPIKey builds the API key handed out to the owner of tokenIdentifier.
func FormatAPIKey(tokenIdentifier, secret string) string {
	return apiKeyPrefix + base64.RawURLEncoding.EncodeToString([]byte(tokenIdentifier)) + "." + secret
}

// ParseAPIKey splits an API key into its token identifier and secret.
func ParseAPIKey(key string) (tokenIdentifier, secret string, ok bool) {
	rest, found := strings.CutPrefix(key, apiKeyPrefix)
	if !found {
		return "", "", false
	}

	encoded, secret, found := strings.Cut(rest, ".")
	if !found || secret == "" {
		return "", "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(decoded) == 0 {
		return "", "", false
	}

	return string(decoded), secret, true
}

// Name implements Provider.
func (p *LocalProvider) Name() string {
	return "local"
}

// Cacheable implements Cacheable. API keys are checked against the database on every
// request so a rotated or revoked key stops working at once.
func (p *LocalProvider) Cacheable() bool {
	return false
}

// Verify implements Provider.
func (p *LocalProvider) Verify(ctx context.Context, cred Credential) (*Identity, error) {
	if cred.Scheme != SchemeBearer {
		return nil, ErrUnsupportedCredential
	}

	tokenIdentifier, secret, ok := ParseAPIKey(cred.Token)
	if !ok {
		return nil, ErrUnsupportedCredential
	}

	u, err := user.GetByToken(p.db.WithContext(ctx), tokenIdentifier)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if !u.VerifyAPIKey(secret) {
		return nil, ErrInvalidAPIKey
	}

	return &Identity{
		TokenIdentifier: u.TokenIdentifier,
		Provider:        p.Name(),
	}, nil
}
