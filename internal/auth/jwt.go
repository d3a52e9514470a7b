package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrJWTDisabled is returned when JWT authentication is disabled via configuration.
	ErrJWTDisabled = errors.New("jwt authentication is disabled")
	// ErrJWTSecretEmpty is returned when JWT authentication is enabled without a secret.
	ErrJWTSecretEmpty = errors.New("jwt secret is empty")
)

// JWTConfig configures HS256 tokens minted by first-party backends.
type JWTConfig struct {
	Enabled bool
	// Issuer is required in the iss claim when set and used for issued tokens.
	Issuer string
	// Secret is the shared HMAC key.
	Secret string
	// Leeway tolerates clock skew on exp, nbf and iat.
	Leeway time.Duration
}

// JWTProvider verifies and issues HS256 bearer tokens.
type JWTProvider struct {
	config *JWTConfig
	parser *jwt.Parser
}

// NewJWTProvider creates a new JWT provider.
func NewJWTProvider(config *JWTConfig) (*JWTProvider, error) {
	if !config.Enabled {
		return nil, ErrJWTDisabled
	}

	if config.Secret == "" {
		return nil, ErrJWTSecretEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(config.Leeway),
	}

	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}

	return &JWTProvider{
		config: config,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Name implements Provider.
func (p *JWTProvider) Name() string {
	return "jwt"
}

// Verify implements Provider.
func (p *JWTProvider) Verify(_ context.Context, cred Credential) (*Identity, error) {
	raw, ok := bearerToken(cred)
	if !ok {
		return nil, ErrUnsupportedCredential
	}

	claims := new(jwt.RegisteredClaims)

	_, err := p.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(p.config.Secret), nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	identity := &Identity{
		TokenIdentifier: joinIdentifier(claims.Issuer, claims.Subject),
		Provider:        p.Name(),
	}

	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	return identity, nil
}

// Issue signs a token for subject valid for ttl. The resulting token identifier is
// "<issuer>|<subject>".
func (p *JWTProvider) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    p.config.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.config.Secret)) //nolint:wrapcheck
}
