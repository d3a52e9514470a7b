package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

const cacheKeyPrefix = "identity:"

// Storage is the subset of the gofiber storage interface the cache needs.
// Get returns nil without error for missing keys.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Cache keeps resolved identities so expensive verifications (LDAP binds, Argon2id)
// run once per credential and TTL. Keys are SHA-256 digests, raw credentials are never stored.
type Cache struct {
	storage Storage
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache over storage. Entries live at most ttl.
func NewCache(storage Storage, ttl time.Duration) *Cache {
	return &Cache{
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(cred Credential) string {
	sum := sha256.Sum256([]byte(cred.raw))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached identity of a credential, nil on miss.
func (c *Cache) Get(cred Credential) *Identity {
	raw, err := c.storage.Get(cacheKey(cred))
	if err != nil {
		log.Warn().Err(err).Msg("failed to read identity cache")
		return nil
	}

	if len(raw) == 0 {
		return nil
	}

	identity := new(Identity)
	if err = json.Unmarshal(raw, identity); err != nil {
		log.Warn().Err(err).Msg("failed to decode cached identity")
		return nil
	}

	if !identity.ExpiresAt.IsZero() && !c.now().Before(identity.ExpiresAt) {
		return nil
	}

	return identity
}

// Set caches an identity until the earlier of the TTL and the credential expiry.
func (c *Cache) Set(cred Credential, identity *Identity) {
	exp := c.ttl

	if !identity.ExpiresAt.IsZero() {
		if remaining := identity.ExpiresAt.Sub(c.now()); remaining < exp {
			exp = remaining
		}
	}

	if exp <= 0 {
		return
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode identity")
		return
	}

	if err = c.storage.Set(cacheKey(cred), raw, exp); err != nil {
		log.Warn().Err(err).Msg("failed to write identity cache")
	}
}
