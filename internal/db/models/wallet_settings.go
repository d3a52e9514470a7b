package models

import "time"

// WalletSettings is the singleton wallet configuration record.
type WalletSettings struct {
	ID                    string    `gorm:"primaryKey;size:36"           json:"id"`
	Scope                 string    `gorm:"size:16;not null;uniqueIndex" json:"-"`
	MinWithdrawalAmount   int64     `gorm:"not null"                     json:"minWithdrawalAmount"`
	LevelThreshold        int64     `gorm:"not null"                     json:"levelThreshold"`
	MaxLevel              int64     `gorm:"not null"                     json:"maxLevel"`
	Level50PlusDiscount   int64     `gorm:"column:level50_plus_discount;not null" json:"level50PlusDiscount"`
	RecipientSharePercent int64     `gorm:"not null"                     json:"recipientSharePercent"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the WalletSettings model.
func (WalletSettings) TableName() string {
	return "wallet_settings"
}
