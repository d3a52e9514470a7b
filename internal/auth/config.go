package auth

import "time"

// Config holds the identity resolution settings.
type Config struct {
	// BootstrapAdmin is a token identifier granted the admin role on startup, empty to skip.
	BootstrapAdmin string
	Cache          CacheConfig
	OIDC           OIDCConfig
	JWT            JWTConfig
	Local          LocalConfig
	LDAP           LDAPConfig
}

// CacheConfig configures caching of resolved identities.
type CacheConfig struct {
	Enabled bool
	// TTL bounds how long an identity is cached. Token expiry shortens it further.
	TTL time.Duration
	// Table is the storage table of the cache.
	Table string
}

// LocalConfig configures API keys issued by the CLI.
type LocalConfig struct {
	Enabled bool
}
