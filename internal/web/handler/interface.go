package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, store *configstore.Store)
}
