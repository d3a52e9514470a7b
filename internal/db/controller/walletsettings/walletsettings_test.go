package walletsettings

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

	settings, err := Load(db)
	require.NoError(t, err)

	assert.Empty(t, settings.ID)
	assert.Equal(t, int64(25000), settings.MinWithdrawalAmount)
	assert.Equal(t, int64(1000000), settings.LevelThreshold)
	assert.Equal(t, int64(100), settings.MaxLevel)
	assert.Equal(t, int64(25), settings.Level50PlusDiscount)
	assert.Equal(t, int64(50), settings.RecipientSharePercent)
}

func TestPatch_Validate(t *testing.T) {
	testCases := []struct {
		name          string
		patch         Patch
		expectedField string
	}{
		{name: "empty patch", patch: Patch{}},
		{name: "max level lower bound", patch: Patch{MaxLevel: ptr(1)}},
		{name: "max level upper bound", patch: Patch{MaxLevel: ptr(1000)}},
		{name: "max level zero", patch: Patch{MaxLevel: ptr(0)}, expectedField: "maxLevel"},
		{name: "max level too high", patch: Patch{MaxLevel: ptr(1001)}, expectedField: "maxLevel"},
		{name: "zero min withdrawal", patch: Patch{MinWithdrawalAmount: ptr(0)}},
		{name: "negative min withdrawal", patch: Patch{MinWithdrawalAmount: ptr(-1)}, expectedField: "minWithdrawalAmount"},
		{name: "zero level threshold", patch: Patch{LevelThreshold: ptr(0)}, expectedField: "levelThreshold"},
		{name: "discount over 100", patch: Patch{Level50PlusDiscount: ptr(101)}, expectedField: "level50PlusDiscount"},
		{name: "discount 100", patch: Patch{Level50PlusDiscount: ptr(100)}},
		{name: "share negative", patch: Patch{RecipientSharePercent: ptr(-5)}, expectedField: "recipientSharePercent"},
		{
			name: "first failing check wins",
			patch: Patch{
				LevelThreshold: ptr(0),
				MaxLevel:       ptr(0),
			},
			expectedField: "levelThreshold",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			if tc.expectedField == "" {
				require.NoError(t, err)
				return
			}

			var validationErr *singleton.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.expectedField, validationErr.Field)
			assert.Equal(t, messages[tc.expectedField], validationErr.Message)
		})
	}
}

func TestSave(t *testing.T) {
	db := dbtest.New(t)

	// first write inserts, unsupplied fields take defaults
	inserted, err := Save(db, &Patch{MinWithdrawalAmount: ptr(30000)})
	require.NoError(t, err)
	require.NotEmpty(t, inserted.ID)
	assert.Equal(t, int64(30000), inserted.MinWithdrawalAmount)
	assert.Equal(t, int64(1000000), inserted.LevelThreshold)
	assert.Equal(t, int64(50), inserted.RecipientSharePercent)

	// second write patches in place and keeps the identifier
	patched, err := Save(db, &Patch{MaxLevel: ptr(200)})
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, patched.ID)

	stored, err := Load(db)
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, stored.ID)
	assert.Equal(t, int64(30000), stored.MinWithdrawalAmount)
	assert.Equal(t, int64(200), stored.MaxLevel)
	assert.Equal(t, int64(25), stored.Level50PlusDiscount)

	var count int64
	require.NoError(t, db.Model(&models.WalletSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSave_InvalidLeavesStateUnchanged(t *testing.T) {
	db := dbtest.New(t)

	_, err := Save(db, &Patch{MaxLevel: ptr(1001)})
	var validationErr *singleton.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = singleton.Get[models.WalletSettings](db)
	require.ErrorIs(t, err, singleton.ErrNotFound)
}
