// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-locator-service/internal/domain"
	"store-locator-service/internal/transport/httpserver/dto"
)

// domainError maps a known domain error to an HTTP response; unknown errors
// become a logged 500.
func domainError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, "user not found", "NOT_FOUND")
	case errors.Is(err, domain.ErrStoreNotFound):
		return respondError(c, fiber.StatusNotFound, "store not found", "NOT_FOUND")
	case errors.Is(err, domain.ErrLocationNotFound):
		return respondError(c, fiber.StatusNotFound, "no location on record", "NO_LOCATION")
	case errors.Is(err, domain.ErrFavoriteNotFound):
		return respondError(c, fiber.StatusNotFound, "favorite not found", "NOT_FOUND")
	case errors.Is(err, domain.ErrEmailExists):
		return respondError(c, fiber.StatusConflict, "email already registered", "EMAIL_EXISTS")
	case errors.Is(err, domain.ErrFavoriteExists):
		return respondError(c, fiber.StatusConflict, "store already bookmarked", "FAVORITE_EXISTS")
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return respondError(c, fiber.StatusConflict, "concurrent update in progress, retry shortly", "CONCURRENT_UPDATE")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, domain.ErrInvalidResetToken):
		return respondError(c, fiber.StatusBadRequest, "invalid or expired reset token", "INVALID_RESET_TOKEN")
	default:
		logger.Error("request failed",
			zap.Error(err),
			zap.String("path", c.Path()),
		)

		return respondError(c, fiber.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func respondError(c *fiber.Ctx, status int, msg, code string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

func badRequest(c *fiber.Ctx, msg, code string) error {
	return respondError(c, fiber.StatusBadRequest, msg, code)
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, size
}

func validationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "validation failed",
		Code:    "VALIDATION_ERROR",
		Details: err,
	})
}
