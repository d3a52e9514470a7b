// Package handler holds what the settings route handlers share: the route prefix,
// the handler interface, JSON body binding and the mapping of store errors to responses.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/fortuna-social/settings-service/internal/configstore"
)

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusOf maps a store error kind to its HTTP status.
func StatusOf(kind configstore.Kind) int {
	switch kind {
	case configstore.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case configstore.KindForbidden:
		return fiber.StatusForbidden
	case configstore.KindBadRequest:
		return fiber.StatusBadRequest
	case configstore.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders store errors and fiber errors as ErrorResponse.
func ErrorHandler(c fiber.Ctx, err error) error {
	var (
		storeErr *configstore.Error
		fiberErr *fiber.Error
		status   int
		body     ErrorResponse
	)

	switch {
	case errors.As(err, &storeErr):
		status = StatusOf(storeErr.Kind)
		body = ErrorResponse{Error: string(storeErr.Kind), Message: storeErr.Message}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		body = ErrorResponse{Error: errorName(fiberErr.Code), Message: fiberErr.Message}
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled request error")

		status = fiber.StatusInternalServerError
		body = ErrorResponse{Error: string(configstore.KindInternal), Message: configstore.ErrInternal.Message}
	}

	return c.Status(status).JSON(body)
}

func errorName(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return string(configstore.KindBadRequest)
	case fiber.StatusUnauthorized:
		return string(configstore.KindUnauthenticated)
	case fiber.StatusForbidden:
		return string(configstore.KindForbidden)
	case fiber.StatusNotFound:
		return string(configstore.KindNotFound)
	case fiber.StatusTooManyRequests:
		return "rate_limited"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		if status >= fiber.StatusInternalServerError {
			return string(configstore.KindInternal)
		}

		return "error"
	}
}

// BindJSON decodes the request body into out. An empty body leaves out untouched.
func BindJSON(c fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}

	if err := c.Bind().JSON(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}

	return nil
}
