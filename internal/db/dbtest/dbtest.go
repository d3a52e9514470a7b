// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fortuna-social/settings-service/internal/db/models"
)

// New creates an in-memory SQLite database with every model migrated.
// The pool is limited to one connection so all statements see the same in-memory database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB")
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(models.All()...)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// SeedUsers inserts users into the database.
func SeedUsers(t *testing.T, db *gorm.DB, users ...models.User) {
	t.Helper()

	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error, "failed to seed user")
	}
}
