// Package configstore is the settings and pricing configuration store.
//
// It owns three scopes sharing one pattern: keyed settings, the fortune pricing singleton
// and the wallet settings singleton. Writes require an admin, reads fall back to defaults
// and writes upsert. Every error is an *Error carrying a Kind.
package configstore

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/db/controller/setting"
	"github.com/fortuna-social/settings-service/internal/db/controller/singleton"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

const (
	// VerificationPriceKey is the keyed setting holding the account verification price.
	VerificationPriceKey = "verification_price"

	scopeSettings = "settings"
)

// Store is the configuration store. It is safe for concurrent use.
type Store struct {
	db *gorm.DB
}

// New creates a store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetSetting returns the value of a keyed setting, nil when it was never written.
// The empty key can never be written and always reads as absent.
func (s *Store) GetSetting(ctx context.Context, key string) (*string, error) {
	if key == "" {
		return nil, nil //nolint:nilnil
	}

	record, err := setting.Get(s.db.WithContext(ctx), key)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, s.internal(err, "failed to read setting")
	}

	return &record.Value, nil
}

// GetVerificationPrice returns the verification price, nil when unset.
// A stored value that is not an integer reads as unset.
func (s *Store) GetVerificationPrice(ctx context.Context) (*int64, error) {
	value, err := s.GetSetting(ctx, VerificationPriceKey)
	if err != nil || value == nil {
		return nil, err
	}

	price, err := strconv.ParseInt(*value, 10, 64)
	if err != nil {
		log.Warn().Err(err).Str("key", VerificationPriceKey).Msg("stored verification price is not an integer")
		return nil, nil //nolint:nilnil
	}

	return &price, nil
}

// UpsertSetting replaces the value of a keyed setting, creating it on first write.
func (s *Store) UpsertSetting(ctx context.Context, identity *auth.Identity, key, value string) (err error) {
	defer func() { observeWrite(scopeSettings, err) }()

	if _, err = s.RequireAdmin(ctx, identity); err != nil {
		return err
	}

	if key == "" {
		return newError(KindBadRequest, setting.ErrSettingKeyEmpty.Error(), nil)
	}

	if err = validateTypedSetting(key, value); err != nil {
		return err
	}

	if _, err = setting.Set(s.db.WithContext(ctx), key, value); err != nil {
		return s.internal(err, "failed to write setting")
	}

	log.Info().Str("key", key).Str("token_identifier", identity.TokenIdentifier).Msg("setting updated")

	return nil
}

// ListSettings returns every keyed setting in no particular order.
func (s *Store) ListSettings(ctx context.Context, identity *auth.Identity) ([]models.Setting, error) {
	if _, err := s.RequireAdmin(ctx, identity); err != nil {
		return nil, err
	}

	settings, err := setting.GetAll(s.db.WithContext(ctx))
	if err != nil {
		return nil, s.internal(err, "failed to list settings")
	}

	return settings, nil
}

// validateTypedSetting checks keys with a known value type.
func validateTypedSetting(key, value string) error {
	if key != VerificationPriceKey {
		return nil
	}

	price, err := strconv.ParseInt(value, 10, 64)
	if err != nil || price < 0 {
		return newError(KindBadRequest, VerificationPriceKey+" must be a non-negative integer", err)
	}

	return nil
}

// mapWriteError converts controller errors of a singleton write.
func (s *Store) mapWriteError(err error, msg string) error {
	var validationErr *singleton.ValidationError
	if errors.As(err, &validationErr) {
		return newError(KindBadRequest, validationErr.Message, err)
	}

	return s.internal(err, msg)
}

// internal logs a store failure and wraps it as KindInternal.
func (s *Store) internal(err error, msg string) error {
	log.Error().Err(err).Msg(msg)

	return newError(KindInternal, msg, err)
}
