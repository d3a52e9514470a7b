package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

const (
	// RoleAdmin grants write access to every settings scope.
	RoleAdmin = "admin"
	// RoleUser is the default role of application users.
	RoleUser = "user"
)

// User is the persisted account an identity token resolves to.
// The settings core only reads users; they are managed through the CLI.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// TokenIdentifier is the opaque identifier issued by the identity provider (issuer|subject).
	TokenIdentifier string `gorm:"size:255;not null;uniqueIndex:by_token"`
	// Name is the display name of the user.
	Name string `gorm:"size:100"`
	// Email is the user's email address.
	Email string `gorm:"size:255"`
	// Role is the application role, "admin" grants settings administration.
	Role string `gorm:"size:50;not null;default:'user'"`
	// IsSuperAdmin grants settings administration regardless of Role.
	IsSuperAdmin bool `gorm:"not null;default:false"`
	// APIKeyHash is the Argon2id hash of the user's local API key secret, empty if none was issued.
	APIKeyHash string `gorm:"size:255"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may administrate settings.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperAdmin
}

// HashAPIKey hashes an API key secret using the Argon2id algorithm.
func HashAPIKey(secret string) (string, error) {
	return argon2id.CreateHash(secret, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyAPIKey verifies an API key secret against the user's stored hash.
// Users without an issued key never verify.
func (u *User) VerifyAPIKey(secret string) bool {
	if u.APIKeyHash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(secret, u.APIKeyHash)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("failed to verify api key")
		return false
	}

	return match
}
