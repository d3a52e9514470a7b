package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
	"github.com/fortuna-social/settings-service/internal/db/dbtest"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

func newTestService(t *testing.T, webserver config.Webserver) (*Service, *auth.JWTProvider) {
	t.Helper()

	db := dbtest.New(t)
	dbtest.SeedUsers(t, db, models.User{TokenIdentifier: "web-test|admin", Role: models.RoleAdmin})

	jwtProvider, err := auth.NewJWTProvider(&auth.JWTConfig{Enabled: true, Issuer: "web-test", Secret: "secret"})
	require.NoError(t, err)

	cfg := &config.Config{Title: "settings-service", Webserver: webserver}

	return New(cfg, configstore.New(db), auth.NewService(nil, jwtProvider)), jwtProvider
}

func do(t *testing.T, s *Service, req *http.Request) (int, string) {
	t.Helper()

	resp, err := s.App.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestService_CheckAlive(t *testing.T) {
	s, _ := newTestService(t, config.Webserver{})

	s.alive.Store(true)
	status, body := do(t, s, httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	s.alive.Store(false)
	status, _ = do(t, s, httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestService_Metrics(t *testing.T) {
	s, jwtProvider := newTestService(t, config.Webserver{})

	token, err := jwtProvider.Issue("admin", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/settings/welcome_text", strings.NewReader(`{"value":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	status, _ := do(t, s, req)
	require.Equal(t, http.StatusNoContent, status)

	status, body := do(t, s, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `settings_writes_total{result="ok",scope="settings"}`)
}

func TestService_Routes(t *testing.T) {
	s, jwtProvider := newTestService(t, config.Webserver{WriteRateLimit: 0.0001, WriteRateBurst: 1})

	token, err := jwtProvider.Issue("admin", time.Minute)
	require.NoError(t, err)

	put := func() int {
		req := httptest.NewRequest(http.MethodPut, "/api/wallet-settings", strings.NewReader(`{"maxLevel":200}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		status, _ := do(t, s, req)

		return status
	}

	assert.Equal(t, http.StatusOK, put())
	assert.Equal(t, http.StatusTooManyRequests, put())

	status, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/wallet-settings", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"maxLevel":200`)

	status, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/fortune-pricing/coffee", nil))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"kind":"coffee","price":50}`, body)

	status, _ = do(t, s, httptest.NewRequest(http.MethodGet, "/api/fortune-pricing", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestService_CORS(t *testing.T) {
	s, _ := newTestService(t, config.Webserver{CORSOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/wallet-settings", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	resp, err := s.App.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}
