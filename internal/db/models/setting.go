// Package models contains database model definitions.
package models

import "time"

// Setting is a keyed setting: an arbitrary string key mapped to an opaque string value.
// At most one row exists per key (unique index by_key).
type Setting struct {
	ID        uint64    `gorm:"primaryKey"                                  json:"-"`
	Key       string    `gorm:"column:setting_key;size:191;not null;uniqueIndex:by_key" json:"key"`
	Value     string    `gorm:"type:text;not null"                          json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
