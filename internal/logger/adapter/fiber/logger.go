// Package fiber provides a zerolog based access log middleware for fiber.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/logger"
)

// HeaderPerformance carries the handler latency in seconds.
const HeaderPerformance = "X-Performance"

// Config of the access log middleware.
type Config struct {
	// Next skips the middleware when it returns true.
	Next func(c fiber.Ctx) bool

	// Config selects the outputs: the rotated access file and, with
	// EnableAccessLogToConsole, stdout.
	Config logger.Log

	// ErrorHandler renders chain errors before the access line is written,
	// so the logged status matches what the client receives.
	//
	// Optional. Default: fiber.DefaultErrorHandler
	ErrorHandler fiber.ErrorHandler

	// Fields adds request scoped fields, such as the resolved identity, to the access line.
	Fields func(c fiber.Ctx, e *zerolog.Event)

	// CheckAliveURI is not logged when Config.DisableCheckAlive is set.
	CheckAliveURI string

	// Output replaces the configured writers.
	Output io.Writer
}

// New creates the access log middleware.
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = fiber.DefaultErrorHandler
	}

	access := zerolog.New(accessOutput(&cfg)).With().Timestamp().Logger()

	return func(c fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := cfg.ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
			}
		}

		elapsed := time.Since(start).Seconds()
		c.Set(HeaderPerformance, strconv.FormatFloat(elapsed, 'f', 6, 64)) //nolint:mnd

		if cfg.Config.DisableCheckAlive && c.Path() == cfg.CheckAliveURI {
			return nil
		}

		uri := c.Path()
		if qs := c.Request().URI().QueryString(); len(qs) > 0 {
			uri += "?" + string(qs)
		}

		event := access.Log().
			Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("uri", uri).
			Int("status", c.Response().StatusCode()).
			Float64("latency", elapsed).
			Bytes("host", c.Request().Host()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Str("origin", c.Get(fiber.HeaderOrigin))

		if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
			event.Str("forwarded_for", xff)
		}

		if cfg.Fields != nil {
			cfg.Fields(c, event)
		}

		event.Err(chainErr).Send()

		return nil
	}
}

func accessOutput(cfg *Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}

	var writers []io.Writer

	if cfg.Config.File.Enabled {
		w, err := cfg.Config.File.AccessWriter()
		if err != nil {
			log.Error().Err(err).Msg("access log file disabled")
		} else {
			writers = append(writers, w)
		}
	}

	if cfg.Config.Console.Enabled && cfg.Config.EnableAccessLogToConsole {
		if cfg.Config.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{zerolog.LevelFieldName},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return zerolog.MultiLevelWriter(writers...)
}
