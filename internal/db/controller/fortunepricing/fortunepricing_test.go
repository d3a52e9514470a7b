package fortunepricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna-social/settings-service/internal/db/controller/singleton"
	"github.com/fortuna-social/settings-service/internal/db/dbtest"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

func ptr(v int64) *int64 {
	return &v
}

func TestLoad_Defaults(t *testing.T) {
	db := dbtest.New(t)

	pricing, err := Load(db)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), pricing)
}

func TestSave_PartialPatch(t *testing.T) {
	db := dbtest.New(t)

	_, err := Save(db, &Patch{
		CoffeeFortune: ptr(80),
		TarotFortune:  ptr(120),
		PalmFortune:   ptr(90),
	})
	require.NoError(t, err)

	before, err := Load(db)
	require.NoError(t, err)

	_, err = Save(db, &Patch{DailyFreeCoffee: ptr(2)})
	require.NoError(t, err)

	after, err := Load(db)
	require.NoError(t, err)

	assert.Equal(t, int64(2), after.DailyFreeCoffee)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.CoffeeFortune, after.CoffeeFortune)
	assert.Equal(t, before.TarotFortune, after.TarotFortune)
	assert.Equal(t, before.PalmFortune, after.PalmFortune)
	assert.Equal(t, before.DreamFortune, after.DreamFortune)
	assert.Equal(t, before.FaceFortune, after.FaceFortune)
}

func TestSave_NegativePrice(t *testing.T) {
	db := dbtest.New(t)

	_, err := Save(db, &Patch{TarotFortune: ptr(-1)})

	var validationErr *singleton.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tarotFortune", validationErr.Field)
}

func TestPatch_Columns(t *testing.T) {
	p := Patch{DailyFreeCoffee: ptr(3), FaceFortune: ptr(0)}

	assert.Equal(t, map[string]interface{}{
		"daily_free_coffee": int64(3),
		"face_fortune":      int64(0),
	}, p.Columns())
}

func TestFortunePricing_Price(t *testing.T) {
	pricing := Defaults()

	price, ok := pricing.Price(models.FortuneKindTarot)
	assert.True(t, ok)
	assert.Equal(t, int64(75), price)

	_, ok = pricing.Price("astrology")
	assert.False(t, ok)
}
