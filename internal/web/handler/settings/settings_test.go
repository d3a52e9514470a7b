package settings

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna-social/settings-service/internal/db/models"
	"github.com/fortuna-social/settings-service/internal/web/handler/handlertest"
)

func newTestEnv(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)
	s := &Service{}
	s.Init(env.App, env.Config, env.Store)

	return env
}

func TestService_GetAbsent(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.Do(t, http.MethodGet, "/api/settings/maintenance_banner", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"key":"maintenance_banner","value":null}`, string(body))

	status, body = env.Do(t, http.MethodGet, VerificationPricePath, "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"price":null}`, string(body))
}

func TestService_PutAndGet(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.Do(t, http.MethodPut, "/api/settings/verification_price", handlertest.Admin, `{"value":"1500"}`)
	require.Equal(t, http.StatusNoContent, status)

	status, body := env.Do(t, http.MethodGet, "/api/settings/verification_price", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"key":"verification_price","value":"1500"}`, string(body))

	status, body = env.Do(t, http.MethodGet, VerificationPricePath, "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"price":1500}`, string(body))
}

func TestService_Put(t *testing.T) {
	testCases := []struct {
		name           string
		subject        string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{name: "anonymous", body: `{"value":"x"}`, expectedStatus: http.StatusUnauthorized, expectedError: "unauthenticated"},
		{name: "regular user", subject: handlertest.User, body: `{"value":"x"}`, expectedStatus: http.StatusForbidden, expectedError: "forbidden"},
		{name: "unknown user", subject: handlertest.Unknown, body: `{"value":"x"}`, expectedStatus: http.StatusForbidden, expectedError: "forbidden"},
		{name: "missing value", subject: handlertest.Admin, body: `{}`, expectedStatus: http.StatusBadRequest, expectedError: "bad_request"},
		{name: "invalid json", subject: handlertest.Admin, body: `{"value":`, expectedStatus: http.StatusBadRequest, expectedError: "bad_request"},
		{name: "super admin", subject: handlertest.SuperAdmin, body: `{"value":"x"}`, expectedStatus: http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			status, body := env.Do(t, http.MethodPut, "/api/settings/welcome_text", tc.subject, tc.body)
			require.Equal(t, tc.expectedStatus, status, string(body))

			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, handlertest.ErrorKind(t, body))

				var count int64
				require.NoError(t, env.DB.Model(&models.Setting{}).Count(&count).Error)
				assert.Zero(t, count)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.Do(t, http.MethodGet, Path, handlertest.Admin, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = env.Do(t, http.MethodPut, "/api/settings/a", handlertest.Admin, `{"value":"1"}`)
	require.Equal(t, http.StatusNoContent, status)

	status, body = env.Do(t, http.MethodGet, Path, handlertest.Admin, "")
	require.Equal(t, http.StatusOK, status)

	list := handlertest.Decode[[]models.Setting](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Key)
	assert.Equal(t, "1", list[0].Value)

	status, _ = env.Do(t, http.MethodGet, Path, "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.Do(t, http.MethodGet, Path, handlertest.User, "")
	assert.Equal(t, http.StatusForbidden, status)
}
