package configstore

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/db/controller/fortunepricing"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

const scopeFortunePricing = "fortune_pricing"

// GetFortunePricing returns the full pricing record for the admin panel, or the defaults
// while none is stored. It requires the same capability as writes.
func (s *Store) GetFortunePricing(ctx context.Context, identity *auth.Identity) (models.FortunePricing, error) {
	if _, err := s.RequireAdmin(ctx, identity); err != nil {
		return models.FortunePricing{}, err
	}

	pricing, err := fortunepricing.Load(s.db.WithContext(ctx))
	if err != nil {
		return models.FortunePricing{}, s.internal(err, "failed to read fortune pricing")
	}

	return pricing, nil
}

// GetFortunePrice returns the public price of one fortune kind.
func (s *Store) GetFortunePrice(ctx context.Context, kind string) (int64, error) {
	pricing, err := fortunepricing.Load(s.db.WithContext(ctx))
	if err != nil {
		return 0, s.internal(err, "failed to read fortune pricing")
	}

	price, ok := pricing.Price(kind)
	if !ok {
		return 0, newError(KindBadRequest, "unknown fortune kind '"+kind+"'", nil)
	}

	return price, nil
}

// UpdateFortunePricing patches the pricing record and returns its identifier.
// The first write inserts the record with defaults for unsupplied prices.
func (s *Store) UpdateFortunePricing(
	ctx context.Context,
	identity *auth.Identity,
	patch *fortunepricing.Patch,
) (id string, err error) {
	defer func() { observeWrite(scopeFortunePricing, err) }()

	if _, err = s.RequireAdmin(ctx, identity); err != nil {
		return "", err
	}

	if patch == nil {
		patch = new(fortunepricing.Patch)
	}

	record, err := fortunepricing.Save(s.db.WithContext(ctx), patch)
	if err != nil {
		return "", s.mapWriteError(err, "failed to write fortune pricing")
	}

	log.Info().Str("id", record.ID).Str("token_identifier", identity.TokenIdentifier).Msg("fortune pricing updated")

	return record.ID, nil
}
