// Package fortunepricing stores the singleton fortune pricing record.
package fortunepricing

import (
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/db/controller/singleton"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

var (
	validate = singleton.NewValidator() //nolint:gochecknoglobals

	messages = map[string]string{ //nolint:gochecknoglobals
		"coffeeFortune":   "coffeeFortune must be greater than or equal to 0",
		"tarotFortune":    "tarotFortune must be greater than or equal to 0",
		"palmFortune":     "palmFortune must be greater than or equal to 0",
		"dreamFortune":    "dreamFortune must be greater than or equal to 0",
		"faceFortune":     "faceFortune must be greater than or equal to 0",
		"dailyFreeCoffee": "dailyFreeCoffee must be greater than or equal to 0",
	}
)

// Patch is a partial pricing update. Nil fields keep their stored value.
type Patch struct {
	CoffeeFortune   *int64 `json:"coffeeFortune"   validate:"omitnil,min=0"`
	TarotFortune    *int64 `json:"tarotFortune"    validate:"omitnil,min=0"`
	PalmFortune     *int64 `json:"palmFortune"     validate:"omitnil,min=0"`
	DreamFortune    *int64 `json:"dreamFortune"    validate:"omitnil,min=0"`
	FaceFortune     *int64 `json:"faceFortune"     validate:"omitnil,min=0"`
	DailyFreeCoffee *int64 `json:"dailyFreeCoffee" validate:"omitnil,min=0"`
}

// Defaults returns the pricing used while no record is stored.
func Defaults() models.FortunePricing {
	return models.FortunePricing{
		CoffeeFortune:   50,
		TarotFortune:    75,
		PalmFortune:     60,
		DreamFortune:    40,
		FaceFortune:     60,
		DailyFreeCoffee: 1,
	}
}

// Validate reports the first negative price as a *singleton.ValidationError.
func (p *Patch) Validate() error {
	return singleton.Validate(validate, p, messages)
}

// Columns implements singleton.Patch.
func (p *Patch) Columns() map[string]interface{} {
	columns := map[string]interface{}{}

	for column, value := range map[string]*int64{
		"coffee_fortune":    p.CoffeeFortune,
		"tarot_fortune":     p.TarotFortune,
		"palm_fortune":      p.PalmFortune,
		"dream_fortune":     p.DreamFortune,
		"face_fortune":      p.FaceFortune,
		"daily_free_coffee": p.DailyFreeCoffee,
	} {
		if value != nil {
			columns[column] = *value
		}
	}

	return columns
}

// ApplyTo implements singleton.Patch.
func (p *Patch) ApplyTo(record *models.FortunePricing) {
	set := func(dst *int64, src *int64) {
		if src != nil {
			*dst = *src
		}
	}

	set(&record.CoffeeFortune, p.CoffeeFortune)
	set(&record.TarotFortune, p.TarotFortune)
	set(&record.PalmFortune, p.PalmFortune)
	set(&record.DreamFortune, p.DreamFortune)
	set(&record.FaceFortune, p.FaceFortune)
	set(&record.DailyFreeCoffee, p.DailyFreeCoffee)
}

// Load returns the stored pricing or the defaults.
func Load(db *gorm.DB) (models.FortunePricing, error) {
	return singleton.Load(db, Defaults())
}

// Save validates and applies a patch, inserting the record with defaults on first write.
func Save(db *gorm.DB, p *Patch) (*models.FortunePricing, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return singleton.Upsert(db, Defaults(), p)
}
