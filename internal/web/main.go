// Package web implements the HTTP API of the settings service.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/configstore"
	fiberlogger "github.com/fortuna-social/settings-service/internal/logger/adapter/fiber"
	"github.com/fortuna-social/settings-service/internal/web/handler"
	"github.com/fortuna-social/settings-service/internal/web/handler/fortunepricing"
	"github.com/fortuna-social/settings-service/internal/web/handler/settings"
	"github.com/fortuna-social/settings-service/internal/web/handler/walletsettings"
	"github.com/fortuna-social/settings-service/internal/web/middleware/ratelimit"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address and blocks until it stops.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the web service down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 while the service accepts traffic and 503 during shutdown.
func (s *Service) CheckAlive(c fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, store *configstore.Store, authService *auth.Service) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if store == nil {
		panic("store cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			UnescapePath:   true,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}

	if !cfg.Webserver.DisableRecover {
		app.Use(recoverer.New())
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		ErrorHandler:  handler.ErrorHandler,
		CheckAliveURI: CheckAlivePath,
		Fields: func(c fiber.Ctx, e *zerolog.Event) {
			if id := auth.FromContext(c); id != nil {
				e.Str("identity", id.TokenIdentifier).Str("provider", id.Provider)
			}
		},
	}))

	if len(cfg.Webserver.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Webserver.CORSOrigins,
			AllowMethods: []string{fiber.MethodGet, fiber.MethodPut, fiber.MethodPatch, fiber.MethodOptions},
			AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType},
		}))
	}

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(handler.APIPath, ratelimit.New(ratelimit.Config{
		Limit: cfg.Webserver.WriteRateLimit,
		Burst: cfg.Webserver.WriteRateBurst,
	}))

	if authService != nil {
		app.Use(handler.APIPath, auth.Middleware(authService))
	}

	settings.Handler.Init(app, cfg, store)
	fortunepricing.Handler.Init(app, cfg, store)
	walletsettings.Handler.Init(app, cfg, store)

	return service
}
