package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// ErrOIDCDisabled is returned when OIDC is disabled via configuration.
var ErrOIDCDisabled = errors.New("oidc authentication is disabled")

// OIDCConfig holds OpenID Connect (OIDC) configuration for authentication.
type OIDCConfig struct {
	// Enabled indicates if OIDC authentication is enabled.
	Enabled bool
	// IssuerURL is the OIDC provider's discovery URL (e.g., "https://accounts.google.com").
	IssuerURL string
	// ClientID is the expected audience of ID tokens. Empty skips the audience check.
	ClientID string
}

// OIDCProvider verifies OIDC ID tokens sent as bearer tokens.
type OIDCProvider struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCProvider discovers the issuer and creates a new OIDC provider.
func NewOIDCProvider(ctx context.Context, config *OIDCConfig) (*OIDCProvider, error) {
	if !config.Enabled {
		return nil, ErrOIDCDisabled
	}

	provider, err := oidc.NewProvider(ctx, config.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &OIDCProvider{
		verifier: provider.Verifier(&oidc.Config{
			ClientID:          config.ClientID,
			SkipClientIDCheck: config.ClientID == "",
		}),
	}, nil
}

// Name implements Provider.
func (p *OIDCProvider) Name() string {
	return "oidc"
}

// Verify implements Provider. The token identifier is "<issuer>|<subject>".
func (p *OIDCProvider) Verify(ctx context.Context, cred Credential) (*Identity, error) {
	raw, ok := bearerToken(cred)
	if !ok {
		return nil, ErrUnsupportedCredential
	}

	idToken, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	if idToken.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &Identity{
		TokenIdentifier: joinIdentifier(idToken.Issuer, idToken.Subject),
		Provider:        p.Name(),
		ExpiresAt:       idToken.Expiry,
	}, nil
}
