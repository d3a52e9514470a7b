// Package db opens and migrates the settings database.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/db/dsn"
	"github.com/fortuna-social/settings-service/internal/db/models"
	gormlogger "github.com/fortuna-social/settings-service/internal/logger/adapter/gorm"
)

// Open connects to the configured database engine.
// Driver errors are translated, so unique index violations surface as gorm.ErrDuplicatedKey.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var (
		dialector gorm.Dialector
		source    = dsn.Create(cfg)
	)

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(source)
	case config.EnginePostgres:
		dialector = gormpostgres.Open(source)
	default:
		dialector = sqlite.Open(source)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.New(cfg.DB.Debug),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	return db, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(models.All()...), "failed to migrate database")
}
