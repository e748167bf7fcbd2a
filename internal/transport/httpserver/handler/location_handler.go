package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/transport/httpserver/dto"
	"store-locator-service/internal/transport/httpserver/middleware"
	"store-locator-service/internal/validator"
)

// LocationHandler handles the caller's current-location endpoints.
type LocationHandler struct {
	locations *service.LocationService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locations *service.LocationService, v *validator.Validator, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locations: locations,
		validator: v,
		logger:    logger,
	}
}

// Update handles PUT /api/v1/users/me/location
//
// A concurrent update for the same user answers 409 with code
// CONCURRENT_UPDATE; the client retries with its freshest position.
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	location, err := h.locations.UpdateLocation(c.Context(), middleware.UserID(c), req.Latitude, req.Longitude)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromDomainLocation(location))
}

// Get handles GET /api/v1/users/me/location
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	location, err := h.locations.GetLocation(c.Context(), middleware.UserID(c))
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromDomainLocation(location))
}
