package configstore

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/db/controller/walletsettings"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

const scopeWalletSettings = "wallet_settings"

// GetWalletSettings returns the stored wallet settings, or the defaults while none are stored.
func (s *Store) GetWalletSettings(ctx context.Context) (models.WalletSettings, error) {
	settings, err := walletsettings.Load(s.db.WithContext(ctx))
	if err != nil {
		return models.WalletSettings{}, s.internal(err, "failed to read wallet settings")
	}

	return settings, nil
}

// UpdateWalletSettings validates and patches the wallet settings and returns the record
// identifier. Unlike the other writes an unknown caller fails with KindNotFound.
func (s *Store) UpdateWalletSettings(
	ctx context.Context,
	identity *auth.Identity,
	patch *walletsettings.Patch,
) (id string, err error) {
	defer func() { observeWrite(scopeWalletSettings, err) }()

	if _, err = s.requireAdmin(ctx, identity, KindNotFound); err != nil {
		return "", err
	}

	if patch == nil {
		patch = new(walletsettings.Patch)
	}

	record, err := walletsettings.Save(s.db.WithContext(ctx), patch)
	if err != nil {
		return "", s.mapWriteError(err, "failed to write wallet settings")
	}

	log.Info().Str("id", record.ID).Str("token_identifier", identity.TokenIdentifier).Msg("wallet settings updated")

	return record.ID, nil
}
