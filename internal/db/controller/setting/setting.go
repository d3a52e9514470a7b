// Package setting provides storage operations for keyed settings.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/db/models"
)

const (
	keyQueryPattern = "setting_key = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to read or write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its key. Keys are matched byte for byte.
func Get(db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.Setting

	result := db.Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all keyed settings from the database. Order is not guaranteed.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	settings := []models.Setting{}

	result := db.Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// Create creates a new setting in the database.
func Create(db *gorm.DB, key, value string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var existing models.Setting

	result := db.Where(keyQueryPattern, key).First(&existing)
	if result.Error == nil {
		return nil, ErrSettingAlreadyExists
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	setting := &models.Setting{
		Key:   key,
		Value: value,
	}

	result = db.Create(setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

// Set creates or replaces a setting by key (upsert operation).
// The lookup and the write run in one transaction. A concurrent first insert of the same key
// surfaces as a duplicate key error and the write is retried once as an update.
func Set(db *gorm.DB, key, value string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting *models.Setting

	upsert := func(tx *gorm.DB) error {
		existing, err := Get(tx, key)
		if errors.Is(err, ErrSettingNotFound) {
			setting, err = Create(tx, key, value)
			return err
		}

		if err != nil {
			return err
		}

		if existing.Value != value {
			if err = tx.Model(existing).Update("value", value).Error; err != nil {
				return err
			}

			existing.Value = value
		}

		setting = existing

		return nil
	}

	err := db.Transaction(upsert)
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrSettingAlreadyExists) {
		err = db.Transaction(upsert)
	}

	if err != nil {
		return nil, err
	}

	return setting, nil
}
