package auth

import (
	"github.com/gofiber/fiber/v3"
)

type identityKey struct{}

// Middleware resolves the request's Authorization header and stores the identity for
// FromContext. Requests without a valid credential pass through without an identity.
func Middleware(service *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		if identity := service.Resolve(c.Context(), c.Get(fiber.HeaderAuthorization)); identity != nil {
			c.Locals(identityKey{}, identity)
		}

		return c.Next()
	}
}

// FromContext returns the identity resolved by Middleware, nil if there is none.
func FromContext(c fiber.Ctx) *Identity {
	identity, _ := c.Locals(identityKey{}).(*Identity)
	return identity
}
