// Package walletsettings serves the wallet settings routes.
package walletsettings

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
	controller "github.com/fortuna-social/settings-service/internal/db/controller/walletsettings"
	"github.com/fortuna-social/settings-service/internal/web/handler"
)

// Path is the wallet settings record.
const Path = handler.APIPath + "wallet-settings"

// Service is the wallet settings handler service.
type Service struct {
	handler.Service
	store *configstore.Store
}

// Handler is the wallet settings handler.
var Handler = Service{}

// UpdateResponse carries the identifier of the written record.
type UpdateResponse struct {
	ID string `json:"id"`
}

// Init initializes the wallet settings handler.
func (s *Service) Init(app *fiber.App, _ *config.Config, store *configstore.Store) {
	if app == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.store = store

	app.Get(Path, s.Get)
	app.Put(Path, s.Put)
}

// Get returns the wallet settings.
func (s *Service) Get(c fiber.Ctx) error {
	settings, err := s.store.GetWalletSettings(c.Context())
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(settings)
}

// Put patches the supplied wallet settings. Admin only.
func (s *Service) Put(c fiber.Ctx) error {
	patch := new(controller.Patch)
	if err := handler.BindJSON(c, patch); err != nil {
		return err //nolint:wrapcheck
	}

	id, err := s.store.UpdateWalletSettings(c.Context(), auth.FromContext(c), patch)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(UpdateResponse{ID: id})
}
