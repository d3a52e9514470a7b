// Package daemon wires configuration, database, identity resolution and the web service.
package daemon

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
	"github.com/fortuna-social/settings-service/internal/db"
	"github.com/fortuna-social/settings-service/internal/db/controller/user"
	"github.com/fortuna-social/settings-service/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	closers    []io.Closer
	webService *web.Service
}

// openDatabase is replaced in tests to observe the connection New opens.
var openDatabase = db.Open

// New opens and migrates the database, seeds the bootstrap admin and builds the web service.
// When any step fails the database connection is closed again.
func New(ctx context.Context, cfg *config.Config) (_ *Daemon, err error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	gormDB, err := openDatabase(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	d := &Daemon{cfg: cfg, db: gormDB}

	defer func() {
		if err != nil {
			d.close()
		}
	}()

	if err = db.Migrate(gormDB); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = seed(cfg, gormDB); err != nil {
		return nil, err
	}

	if n, errCount := user.Count(gormDB); errCount == nil && n == 0 {
		log.Warn().Msg("users table is empty, settings writes are rejected until an admin is created with 'user create' and 'user grant'")
	}

	authService, closers, err := newAuthService(ctx, cfg, gormDB)
	if err != nil {
		return nil, err
	}

	log.Info().Strs("providers", authService.Providers()).Msg("identity providers enabled")

	d.closers = closers
	d.webService = web.New(cfg, configstore.New(gormDB), authService)

	return d, nil
}

// Start serves HTTP until SIGINT or SIGTERM and then releases every resource.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	errc := make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Msg("starting http server")
		errc <- d.webService.Start(addr)
	}()

	go d.webService.WaitShutdown()

	err := <-errc

	d.close()

	return err
}

func (d *Daemon) close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close identity cache storage")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}
}
