// Package handlertest builds fiber apps wired like the production server for handler tests.
package handlertest

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
	"github.com/fortuna-social/settings-service/internal/db/dbtest"
	"github.com/fortuna-social/settings-service/internal/db/models"
	"github.com/fortuna-social/settings-service/internal/web/handler"
)

const (
	// Issuer of the tokens minted by Env.Token.
	Issuer = "test-backend"

	// Admin, SuperAdmin and User are subjects of seeded users. Unknown has no user row.
	Admin      = "admin"
	SuperAdmin = "root"
	User       = "alice"
	Unknown    = "ghost"
)

// Env is a fiber app with the auth middleware, the API error handler and a store over an
// in-memory database.
type Env struct {
	App    *fiber.App
	Config *config.Config
	DB     *gorm.DB
	Store  *configstore.Store

	jwt *auth.JWTProvider
}

// New creates a test environment with the Admin, SuperAdmin and User subjects seeded.
func New(t *testing.T) *Env {
	t.Helper()

	db := dbtest.New(t)
	dbtest.SeedUsers(t, db,
		models.User{TokenIdentifier: TokenIdentifier(Admin), Role: models.RoleAdmin},
		models.User{TokenIdentifier: TokenIdentifier(SuperAdmin), Role: models.RoleUser, IsSuperAdmin: true},
		models.User{TokenIdentifier: TokenIdentifier(User), Role: models.RoleUser},
	)

	jwtProvider, err := auth.NewJWTProvider(&auth.JWTConfig{Enabled: true, Issuer: Issuer, Secret: "handler-test-secret"})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(auth.Middleware(auth.NewService(nil, jwtProvider)))

	return &Env{
		App:    app,
		Config: &config.Config{},
		DB:     db,
		Store:  configstore.New(db),
		jwt:    jwtProvider,
	}
}

// TokenIdentifier returns the identifier a token for subject resolves to.
func TokenIdentifier(subject string) string {
	return Issuer + "|" + subject
}

// Token mints a bearer token for subject.
func (e *Env) Token(t *testing.T, subject string) string {
	t.Helper()

	token, err := e.jwt.Issue(subject, time.Hour)
	require.NoError(t, err)

	return token
}

// Do sends a request as subject (anonymous when empty) and returns status and body.
func (e *Env) Do(t *testing.T, method, target, subject, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if subject != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth.SchemeBearer+" "+e.Token(t, subject))
	}

	resp, err := e.App.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

// Decode unmarshals a response body.
func Decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))

	return out
}

// ErrorKind returns the error field of an error response body.
func ErrorKind(t *testing.T, body []byte) string {
	t.Helper()

	return Decode[handler.ErrorResponse](t, body).Error
}
