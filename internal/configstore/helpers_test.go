package configstore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/db/dbtest"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

const (
	adminToken      = "fortuna-backend|admin"
	superAdminToken = "fortuna-backend|root"
	userToken       = "fortuna-backend|alice"
	unknownToken    = "fortuna-backend|ghost"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	db := dbtest.New(t)
	dbtest.SeedUsers(t, db,
		models.User{TokenIdentifier: adminToken, Role: models.RoleAdmin},
		models.User{TokenIdentifier: superAdminToken, Role: models.RoleUser, IsSuperAdmin: true},
		models.User{TokenIdentifier: userToken, Role: models.RoleUser},
	)

	return New(db), db
}

func identity(token string) *auth.Identity {
	return &auth.Identity{TokenIdentifier: token, Provider: "jwt"}
}

func ptr(v int64) *int64 {
	return &v
}

// countStatements counts every statement gorm executes on db from now on.
func countStatements(t *testing.T, db *gorm.DB) *int {
	t.Helper()

	count := new(int)
	inc := func(*gorm.DB) { *count++ }

	cb := db.Callback()
	require.NoError(t, cb.Query().Before("gorm:query").Register("test:count_query", inc))
	require.NoError(t, cb.Create().Before("gorm:create").Register("test:count_create", inc))
	require.NoError(t, cb.Update().Before("gorm:update").Register("test:count_update", inc))
	require.NoError(t, cb.Row().Before("gorm:row").Register("test:count_row", inc))
	require.NoError(t, cb.Raw().Before("gorm:raw").Register("test:count_raw", inc))

	return count
}
