// Package walletsettings stores the singleton wallet configuration.
package walletsettings

import (
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/db/controller/singleton"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

const (
	// DefaultMinWithdrawalAmount is the smallest withdrawable balance.
	DefaultMinWithdrawalAmount = 25000
	// DefaultLevelThreshold is the amount needed per level.
	DefaultLevelThreshold = 1000000
	// DefaultMaxLevel is the highest reachable level.
	DefaultMaxLevel = 100
	// DefaultLevel50PlusDiscount is the discount percent from level 50 on.
	DefaultLevel50PlusDiscount = 25
	// DefaultRecipientSharePercent is the percent of a gift credited to the recipient.
	DefaultRecipientSharePercent = 50
)

var (
	validate = singleton.NewValidator() //nolint:gochecknoglobals

	messages = map[string]string{ //nolint:gochecknoglobals
		"minWithdrawalAmount":   "minWithdrawalAmount must be greater than or equal to 0",
		"levelThreshold":        "levelThreshold must be greater than 0",
		"maxLevel":              "maxLevel must be between 1 and 1000",
		"level50PlusDiscount":   "level50PlusDiscount must be between 0 and 100",
		"recipientSharePercent": "recipientSharePercent must be between 0 and 100",
	}
)

// Patch is a partial wallet settings update. Nil fields keep their stored value.
// Field order is the validation order.
type Patch struct {
	MinWithdrawalAmount   *int64 `json:"minWithdrawalAmount"   validate:"omitnil,min=0"`
	LevelThreshold        *int64 `json:"levelThreshold"        validate:"omitnil,gt=0"`
	MaxLevel              *int64 `json:"maxLevel"              validate:"omitnil,min=1,max=1000"`
	Level50PlusDiscount   *int64 `json:"level50PlusDiscount"   validate:"omitnil,min=0,max=100"`
	RecipientSharePercent *int64 `json:"recipientSharePercent" validate:"omitnil,min=0,max=100"`
}

// Defaults returns the wallet settings used while no record is stored.
func Defaults() models.WalletSettings {
	return models.WalletSettings{
		MinWithdrawalAmount:   DefaultMinWithdrawalAmount,
		LevelThreshold:        DefaultLevelThreshold,
		MaxLevel:              DefaultMaxLevel,
		Level50PlusDiscount:   DefaultLevel50PlusDiscount,
		RecipientSharePercent: DefaultRecipientSharePercent,
	}
}

// Validate reports the first violated constraint as a *singleton.ValidationError.
func (p *Patch) Validate() error {
	return singleton.Validate(validate, p, messages)
}

// Columns implements singleton.Patch.
func (p *Patch) Columns() map[string]interface{} {
	columns := map[string]interface{}{}

	if p.MinWithdrawalAmount != nil {
		columns["min_withdrawal_amount"] = *p.MinWithdrawalAmount
	}

	if p.LevelThreshold != nil {
		columns["level_threshold"] = *p.LevelThreshold
	}

	if p.MaxLevel != nil {
		columns["max_level"] = *p.MaxLevel
	}

	if p.Level50PlusDiscount != nil {
		columns["level50_plus_discount"] = *p.Level50PlusDiscount
	}

	if p.RecipientSharePercent != nil {
		columns["recipient_share_percent"] = *p.RecipientSharePercent
	}

	return columns
}

// ApplyTo implements singleton.Patch.
func (p *Patch) ApplyTo(record *models.WalletSettings) {
	if p.MinWithdrawalAmount != nil {
		record.MinWithdrawalAmount = *p.MinWithdrawalAmount
	}

	if p.LevelThreshold != nil {
		record.LevelThreshold = *p.LevelThreshold
	}

	if p.MaxLevel != nil {
		record.MaxLevel = *p.MaxLevel
	}

	if p.Level50PlusDiscount != nil {
		record.Level50PlusDiscount = *p.Level50PlusDiscount
	}

	if p.RecipientSharePercent != nil {
		record.RecipientSharePercent = *p.RecipientSharePercent
	}
}

// Load returns the stored wallet settings or the defaults.
func Load(db *gorm.DB) (models.WalletSettings, error) {
	return singleton.Load(db, Defaults())
}

// Save validates and applies a patch, inserting the record with defaults on first write.
func Save(db *gorm.DB, p *Patch) (*models.WalletSettings, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return singleton.Upsert(db, Defaults(), p)
}
