// Package settings serves the keyed settings routes.
package settings

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
	"github.com/fortuna-social/settings-service/internal/web/handler"
)

const (
	// Path lists the keyed settings.
	Path = handler.APIPath + "settings"

	// KeyPath reads and writes one keyed setting.
	KeyPath = Path + "/:key"

	// VerificationPricePath is the public verification price.
	VerificationPricePath = handler.APIPath + "verification-price"
)

// Service is the keyed settings handler service.
type Service struct {
	handler.Service
	store     *configstore.Store
	validator *validator.Validate
}

// Handler is the keyed settings handler.
var Handler = Service{}

// PutRequest is the body of a keyed setting write.
type PutRequest struct {
	Value *string `json:"value" validate:"required"`
}

// Entry is a keyed setting read. Value is null when the setting was never written.
type Entry struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// VerificationPrice is the verification price read. Price is null while unset.
type VerificationPrice struct {
	Price *int64 `json:"price"`
}

// Init initializes the keyed settings handler.
func (s *Service) Init(app *fiber.App, _ *config.Config, store *configstore.Store) {
	if app == nil || store == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.store = store
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Get(KeyPath, s.Get)
	app.Put(KeyPath, s.Put)
	app.Get(VerificationPricePath, s.GetVerificationPrice)
}

// List returns every keyed setting. Admin only.
func (s *Service) List(c fiber.Ctx) error {
	settings, err := s.store.ListSettings(c.Context(), auth.FromContext(c))
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(settings)
}

// Get returns one keyed setting.
func (s *Service) Get(c fiber.Ctx) error {
	key := c.Params("key")

	value, err := s.store.GetSetting(c.Context(), key)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(Entry{Key: key, Value: value})
}

// Put replaces one keyed setting. Admin only.
func (s *Service) Put(c fiber.Ctx) error {
	req := new(PutRequest)
	if err := handler.BindJSON(c, req); err != nil {
		return err //nolint:wrapcheck
	}

	if err := s.validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fiber.NewError(fiber.StatusBadRequest, "value is required")
		}

		return err //nolint:wrapcheck
	}

	if err := s.store.UpsertSetting(c.Context(), auth.FromContext(c), c.Params("key"), *req.Value); err != nil {
		return err //nolint:wrapcheck
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetVerificationPrice returns the verification price.
func (s *Service) GetVerificationPrice(c fiber.Ctx) error {
	price, err := s.store.GetVerificationPrice(c.Context())
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(VerificationPrice{Price: price})
}
