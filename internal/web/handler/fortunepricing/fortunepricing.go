// Package fortunepricing serves the fortune pricing routes.
package fortunepricing

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
	controller "github.com/fortuna-social/settings-service/internal/db/controller/fortunepricing"
	"github.com/fortuna-social/settings-service/internal/web/handler"
)

const (
	// Path is the fortune pricing record.
	Path = handler.APIPath + "fortune-pricing"

	// KindPath is the public price of one fortune kind.
	KindPath = Path + "/:kind"
)

// Service is the fortune pricing handler service.
type Service struct {
	handler.Service
	store *configstore.Store
}

// Handler is the fortune pricing handler.
var Handler = Service{}

// Price is the response of a single price lookup.
type Price struct {
	Kind  string `json:"kind"`
	Price int64  `json:"price"`
}

// UpdateResponse carries the identifier of the written record.
type UpdateResponse struct {
	ID string `json:"id"`
}

// Init initializes the fortune pricing handler.
func (s *Service) Init(app *fiber.App, _ *config.Config, store *configstore.Store) {
	if app == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.store = store

	app.Get(Path, s.Get)
	app.Patch(Path, s.Patch)
	app.Get(KindPath, s.GetPrice)
}

// Get returns the full pricing record for the admin panel. Admin only.
func (s *Service) Get(c fiber.Ctx) error {
	pricing, err := s.store.GetFortunePricing(c.Context(), auth.FromContext(c))
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(pricing)
}

// Patch updates the supplied prices. Admin only.
func (s *Service) Patch(c fiber.Ctx) error {
	patch := new(controller.Patch)
	if err := handler.BindJSON(c, patch); err != nil {
		return err //nolint:wrapcheck
	}

	id, err := s.store.UpdateFortunePricing(c.Context(), auth.FromContext(c), patch)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(UpdateResponse{ID: id})
}

// GetPrice returns the price of one fortune kind.
func (s *Service) GetPrice(c fiber.Ctx) error {
	kind := c.Params("kind")

	price, err := s.store.GetFortunePrice(c.Context(), kind)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(Price{Kind: kind, Price: price})
}
