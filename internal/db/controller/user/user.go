// Package user provides storage operations for user accounts.
package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/db/models"
)

const (
	tokenQueryPattern = "token_identifier = ?"
)

var (
	// ErrUserNotFound is returned when no user exists for a token identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenIdentifierEmpty is returned when a token identifier is empty.
	ErrTokenIdentifierEmpty = errors.New("token identifier cannot be empty")
	// ErrUserAlreadyExists is returned when creating a user whose token identifier is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByToken retrieves a user through the by_token index.
func GetByToken(db *gorm.DB, tokenIdentifier string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tokenIdentifier = strings.TrimSpace(tokenIdentifier)
	if tokenIdentifier == "" {
		return nil, ErrTokenIdentifierEmpty
	}

	var u models.User

	result := db.Where(tokenQueryPattern, tokenIdentifier).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// GetAll retrieves all users.
func GetAll(db *gorm.DB) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	users := []models.User{}
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// Count returns the number of users.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	err := db.Model(&models.User{}).Count(&count).Error

	return count, err
}

// Create creates a user.
func Create(db *gorm.DB, u *models.User) error {
	if db == nil {
		return ErrDBNil
	}

	u.TokenIdentifier = strings.TrimSpace(u.TokenIdentifier)
	if u.TokenIdentifier == "" {
		return ErrTokenIdentifierEmpty
	}

	if u.Role == "" {
		u.Role = models.RoleUser
	}

	err := db.Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}

	return err
}

// SetRole updates the role of a user. A nil superAdmin leaves the super admin
// flag as stored.
func SetRole(db *gorm.DB, tokenIdentifier, role string, superAdmin *bool) (*models.User, error) {
	u, err := GetByToken(db, tokenIdentifier)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{"role": role}
	if superAdmin != nil {
		columns["is_super_admin"] = *superAdmin
	}

	if err = db.Model(u).Updates(columns).Error; err != nil {
		return nil, err
	}

	u.Role = role
	if superAdmin != nil {
		u.IsSuperAdmin = *superAdmin
	}

	return u, nil
}

// SetAPIKeyHash stores the argon2id hash of a user's API key secret.
func SetAPIKeyHash(db *gorm.DB, tokenIdentifier, hash string) error {
	u, err := GetByToken(db, tokenIdentifier)
	if err != nil {
		return err
	}

	return db.Model(u).Update("api_key_hash", hash).Error
}
