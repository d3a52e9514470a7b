package fortunepricing

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

func TestService_GetDefaults(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.Do(t, http.MethodGet, Path, handlertest.Admin, "")
	require.Equal(t, http.StatusOK, status)

	pricing := handlertest.Decode[models.FortunePricing](t, body)
	assert.Equal(t, int64(50), pricing.CoffeeFortune)
	assert.Equal(t, int64(75), pricing.TarotFortune)
	assert.Equal(t, int64(1), pricing.DailyFreeCoffee)
}

func TestService_GetRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.Do(t, http.MethodGet, Path, "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.Do(t, http.MethodGet, Path, handlertest.User, "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestService_GetPrice(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.Do(t, http.MethodGet, Path+"/dream", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"kind":"dream","price":40}`, string(body))

	status, body = env.Do(t, http.MethodGet, Path+"/astrology", "", "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "bad_request", handlertest.ErrorKind(t, body))
}

func TestService_Patch(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.Do(t, http.MethodPatch, Path, handlertest.Admin, `{"coffeeFortune":80,"palmFortune":70}`)
	require.Equal(t, http.StatusOK, status)

	created := handlertest.Decode[UpdateResponse](t, body)
	require.NotEmpty(t, created.ID)

	status, body = env.Do(t, http.MethodPatch, Path, handlertest.SuperAdmin, `{"dailyFreeCoffee":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, handlertest.Decode[UpdateResponse](t, body).ID)

	status, body = env.Do(t, http.MethodGet, Path, handlertest.Admin, "")
	require.Equal(t, http.StatusOK, status)

	pricing := handlertest.Decode[models.FortunePricing](t, body)
	assert.Equal(t, created.ID, pricing.ID)
	assert.Equal(t, int64(80), pricing.CoffeeFortune)
	assert.Equal(t, int64(75), pricing.TarotFortune)
	assert.Equal(t, int64(70), pricing.PalmFortune)
	assert.Equal(t, int64(2), pricing.DailyFreeCoffee)
}

func TestService_PatchRejected(t *testing.T) {
	testCases := []struct {
		name           string
		subject        string
		body           string
		expectedStatus int
	}{
		{name: "anonymous", body: `{"tarotFortune":1}`, expectedStatus: http.StatusUnauthorized},
		{name: "regular user", subject: handlertest.User, body: `{"tarotFortune":1}`, expectedStatus: http.StatusForbidden},
		{name: "negative price", subject: handlertest.Admin, body: `{"tarotFortune":-1}`, expectedStatus: http.StatusBadRequest},
		{name: "wrong type", subject: handlertest.Admin, body: `{"tarotFortune":"cheap"}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			status, body := env.Do(t, http.MethodPatch, Path, tc.subject, tc.body)
			require.Equal(t, tc.expectedStatus, status, string(body))

			status, body = env.Do(t, http.MethodGet, Path+"/tarot", "", "")
			require.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, `{"kind":"tarot","price":75}`, string(body))
		})
	}
}
