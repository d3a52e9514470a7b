package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"time"
)

const (
	// SchemeBearer is the authorization scheme of tokens and API keys.
	SchemeBearer = "Bearer"
	// SchemeBasic is the authorization scheme of LDAP credentials.
	SchemeBasic = "Basic"
)

// Identity is the caller a credential resolved to.
type Identity struct {
	// TokenIdentifier is the opaque identifier stored on users.token_identifier.
	TokenIdentifier string `json:"tokenIdentifier"`
	// Provider names the provider that verified the credential.
	Provider string `json:"provider"`
	// ExpiresAt is the expiry of the credential, zero if it does not expire.
	ExpiresAt time.Time `json:"expiresAt"`
}

// Credential is a parsed Authorization header.
type Credential struct {
	Scheme string
	// Token is set for bearer credentials.
	Token string
	// Username and Password are set for basic credentials.
	Username string
	Password string

	raw string
}

// Provider verifies credentials of one kind.
type Provider interface {
	// Name identifies the provider in logs and on resolved identities.
	Name() string
	// Verify returns the identity of a credential, or ErrUnsupportedCredential when
	// the credential is not of a kind this provider handles.
	Verify(ctx context.Context, cred Credential) (*Identity, error)
}

// Cacheable is implemented by providers that decide whether their verifications may be
// cached. Providers without it are cached.
type Cacheable interface {
	Cacheable() bool
}

func cacheable(p Provider) bool {
	c, ok := p.(Cacheable)

	return !ok || c.Cacheable()
}

// ParseAuthorization parses an Authorization header value. ok is false when the header is
// empty, malformed or uses an unknown scheme.
func ParseAuthorization(header string) (cred Credential, ok bool) {
	scheme, value, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return Credential{}, false
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return Credential{}, false
	}

	switch {
	case strings.EqualFold(scheme, SchemeBearer):
		return Credential{Scheme: SchemeBearer, Token: value, raw: SchemeBearer + " " + value}, true
	case strings.EqualFold(scheme, SchemeBasic):
		decoded, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return Credential{}, false
		}

		username, password, found := strings.Cut(string(decoded), ":")
		if !found || username == "" {
			return Credential{}, false
		}

		return Credential{
			Scheme:   SchemeBasic,
			Username: username,
			Password: password,
			raw:      SchemeBasic + " " + value,
		}, true
	default:
		return Credential{}, false
	}
}

// bearerToken returns the token of a bearer credential that is not a local API key.
func bearerToken(cred Credential) (string, bool) {
	if cred.Scheme != SchemeBearer || strings.HasPrefix(cred.Token, apiKeyPrefix) {
		return "", false
	}

	return cred.Token, true
}

func joinIdentifier(issuer, subject string) string {
	return issuer + "|" + subject
}
