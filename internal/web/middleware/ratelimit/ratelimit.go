// Package ratelimit throttles mutating requests with a token bucket.
package ratelimit

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Config of the middleware.
type Config struct {
	// Limit is the sustained number of mutating requests per second. Zero disables throttling.
	Limit float64
	// Burst is the bucket size, at least 1.
	Burst int
}

// New creates the middleware. Safe methods are never throttled, the bucket is shared by all
// clients.
func New(cfg Config) fiber.Handler {
	if cfg.Limit <= 0 {
		return func(c fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.Limit), cfg.Burst)

	return func(c fiber.Ctx) error {
		if isSafe(c.Method()) || limiter.Allow() {
			return c.Next()
		}

		log.Warn().Str("method", c.Method()).Str("path", c.Path()).Msg("write rate limit exceeded")

		return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded, please retry shortly")
	}
}

func isSafe(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	default:
		return false
	}
}
