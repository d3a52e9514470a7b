package models

import "time"

// Fortune kinds priced by FortunePricing.
const (
	FortuneKindCoffee = "coffee"
	FortuneKindTarot  = "tarot"
	FortuneKindPalm   = "palm"
	FortuneKindDream  = "dream"
	FortuneKindFace   = "face"
)

// FortunePricing is the singleton pricing record of the fortune telling features.
// Prices are in coins.
type FortunePricing struct {
	ID              string    `gorm:"primaryKey;size:36"                   json:"id"`
	Scope           string    `gorm:"size:16;not null;uniqueIndex"         json:"-"`
	CoffeeFortune   int64     `gorm:"not null"                             json:"coffeeFortune"`
	TarotFortune    int64     `gorm:"not null"                             json:"tarotFortune"`
	PalmFortune     int64     `gorm:"not null"                             json:"palmFortune"`
	DreamFortune    int64     `gorm:"not null"                             json:"dreamFortune"`
	FaceFortune     int64     `gorm:"not null"                             json:"faceFortune"`
	DailyFreeCoffee int64     `gorm:"not null"                             json:"dailyFreeCoffee"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the FortunePricing model.
func (FortunePricing) TableName() string {
	return "fortune_pricing"
}

// Price returns the price of a fortune kind. ok is false for unknown kinds.
func (p *FortunePricing) Price(kind string) (price int64, ok bool) {
	switch kind {
	case FortuneKindCoffee:
		return p.CoffeeFortune, true
	case FortuneKindTarot:
		return p.TarotFortune, true
	case FortuneKindPalm:
		return p.PalmFortune, true
	case FortuneKindDream:
		return p.DreamFortune, true
	case FortuneKindFace:
		return p.FaceFortune, true
	default:
		return 0, false
	}
}
