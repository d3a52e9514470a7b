package daemon

import (
	"context"
	"io"

	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/db/dsn"
)

const defaultCacheTable = "identity_cache"

// cacheStorage is what the identity cache needs from a gofiber storage.
type cacheStorage interface {
	auth.Storage
	io.Closer
}

// newAuthService builds the provider chain in resolution order: local API keys, first-party
// JWTs, OIDC ID tokens, LDAP basic auth.
func newAuthService(ctx context.Context, cfg *config.Config, db *gorm.DB) (*auth.Service, []io.Closer, error) {
	var (
		providers []auth.Provider
		closers   []io.Closer
		cache     *auth.Cache
	)

	if cfg.Auth.Local.Enabled {
		providers = append(providers, auth.NewLocalProvider(db))
	}

	if cfg.Auth.JWT.Enabled {
		p, err := auth.NewJWTProvider(&cfg.Auth.JWT)
		if err != nil {
			return nil, nil, errors.Wrap(err, "jwt provider")
		}

		providers = append(providers, p)
	}

	if cfg.Auth.OIDC.Enabled {
		p, err := auth.NewOIDCProvider(ctx, &cfg.Auth.OIDC)
		if err != nil {
			return nil, nil, errors.Wrap(err, "oidc provider")
		}

		providers = append(providers, p)
	}

	if cfg.Auth.LDAP.Enabled {
		p, err := auth.NewLDAPProvider(&cfg.Auth.LDAP)
		if err != nil {
			return nil, nil, errors.Wrap(err, "ldap provider")
		}

		if err = p.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("ldap server not reachable, basic auth will fail until it is")
		}

		providers = append(providers, p)
	}

	if len(providers) == 0 {
		log.Warn().Msg("no identity provider enabled, every settings write will be rejected")
	}

	if cfg.Auth.Cache.Enabled {
		if storage := newCacheStorage(cfg); storage != nil {
			cache = auth.NewCache(storage, cfg.Auth.Cache.TTL)
			closers = append(closers, storage)
		}
	}

	return auth.NewService(cache, providers...), closers, nil
}

// newCacheStorage opens the identity cache table next to the settings tables.
// SQLite has no gofiber storage backend here, the cache stays off.
func newCacheStorage(cfg *config.Config) cacheStorage {
	table := cfg.Auth.Cache.Table
	if table == "" {
		table = defaultCacheTable
	}

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.MySQL(cfg.DB),
			Table:         table,
		})
	case config.EnginePostgres:
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: dsn.Postgres(cfg.DB),
			Table:         table,
		})
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("identity cache needs mysql or postgres, cache disabled")

		return nil
	}
}
