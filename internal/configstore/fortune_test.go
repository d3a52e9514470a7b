package configstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna-social/settings-service/internal/db/controller/fortunepricing"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

func TestGetFortunePricing_Defaults(t *testing.T) {
	store, _ := newTestStore(t)

	pricing, err := store.GetFortunePricing(context.Background(), identity(adminToken))
	require.NoError(t, err)
	assert.Equal(t, fortunepricing.Defaults(), pricing)
}

func TestGetFortunePricing_RequiresAdmin(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetFortunePricing(ctx, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = store.GetFortunePricing(ctx, identity(userToken))
	require.ErrorIs(t, err, ErrForbidden)

	// the single price lookup stays public
	price, err := store.GetFortunePrice(ctx, models.FortuneKindCoffee)
	require.NoError(t, err)
	assert.Equal(t, int64(50), price)
}

func TestGetFortunePrice_UnknownKind(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetFortunePrice(context.Background(), "astrology")
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestUpdateFortunePricing_PartialPatch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	admin := identity(adminToken)

	id, err := store.UpdateFortunePricing(ctx, admin, &fortunepricing.Patch{
		CoffeeFortune:   ptr(90),
		TarotFortune:    ptr(150),
		PalmFortune:     ptr(70),
		DreamFortune:    ptr(30),
		FaceFortune:     ptr(65),
		DailyFreeCoffee: ptr(1),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	before, err := store.GetFortunePricing(ctx, admin)
	require.NoError(t, err)

	patchedID, err := store.UpdateFortunePricing(ctx, admin, &fortunepricing.Patch{DailyFreeCoffee: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, id, patchedID)

	after, err := store.GetFortunePricing(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, int64(2), after.DailyFreeCoffee)

	after.DailyFreeCoffee = before.DailyFreeCoffee
	after.UpdatedAt = before.UpdatedAt
	after.CreatedAt = before.CreatedAt
	assert.Equal(t, before, after)

	price, err := store.GetFortunePrice(ctx, models.FortuneKindTarot)
	require.NoError(t, err)
	assert.Equal(t, int64(150), price)
}

func TestUpdateFortunePricing_Denied(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.UpdateFortunePricing(ctx, identity(adminToken), &fortunepricing.Patch{TarotFortune: ptr(99)})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		token    string
		expected error
	}{
		{name: "regular user", token: userToken, expected: ErrForbidden},
		{name: "unknown user", token: unknownToken, expected: ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.UpdateFortunePricing(ctx, identity(tc.token), &fortunepricing.Patch{TarotFortune: ptr(1)})
			require.ErrorIs(t, err, tc.expected)

			price, err := store.GetFortunePrice(ctx, models.FortuneKindTarot)
			require.NoError(t, err)
			assert.Equal(t, int64(99), price)
		})
	}
}

func TestUpdateFortunePricing_NegativePrice(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.UpdateFortunePricing(context.Background(), identity(adminToken), &fortunepricing.Patch{
		FaceFortune: ptr(-10),
	})
	require.ErrorIs(t, err, ErrBadRequest)

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "faceFortune must be greater than or equal to 0", storeErr.Message)
}

func TestUpdateFortunePricing_Idempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	admin := identity(adminToken)
	patch := &fortunepricing.Patch{CoffeeFortune: ptr(55), DailyFreeCoffee: ptr(3)}

	firstID, err := store.UpdateFortunePricing(ctx, admin, patch)
	require.NoError(t, err)

	first, err := store.GetFortunePricing(ctx, admin)
	require.NoError(t, err)

	secondID, err := store.UpdateFortunePricing(ctx, admin, patch)
	require.NoError(t, err)

	second, err := store.GetFortunePricing(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID)

	second.UpdatedAt = first.UpdatedAt
	assert.Equal(t, first, second)
}
