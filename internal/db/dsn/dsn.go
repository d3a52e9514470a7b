// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/fortuna-social/settings-service/internal/config"
)

// Create builds the Data Source Name of the configured engine.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.GormEngine {
	case config.EngineMySQL:
		return MySQL(dbCfg.DB)
	case config.EnginePostgres:
		return Postgres(dbCfg.DB)
	default:
		return SQLite(dbCfg.DB)
	}
}

// MySQL builds a go-sql-driver/mysql DSN. It serves gorm and the mysql identity cache storage.
func MySQL(db config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres builds a keyword/value DSN accepted by both pgx and gorm.
// Extras are appended as given, e.g. "sslmode=disable TimeZone=UTC".
func Postgres(db config.DB) string {
	parts := []string{
		"host=" + db.Host,
		fmt.Sprintf("port=%d", db.Port),
		"user=" + db.User,
		"password=" + db.Password,
		"dbname=" + db.Name,
	}

	if db.Extras != "" {
		parts = append(parts, db.Extras)
	}

	return strings.Join(parts, " ")
}

// SQLite builds the DSN of a file database.
func SQLite(db config.DB) string {
	if db.Extras == "" {
		return db.Path
	}

	return db.Path + "?" + db.Extras
}
