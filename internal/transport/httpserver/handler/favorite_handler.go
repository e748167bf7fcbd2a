package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/transport/httpserver/dto"
	"store-locator-service/internal/transport/httpserver/middleware"
	"store-locator-service/internal/validator"
)

// FavoriteHandler handles the caller's bookmarked stores.
type FavoriteHandler struct {
	favorites *service.FavoriteService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favorites *service.FavoriteService, v *validator.Validator, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		validator: v,
		logger:    logger,
	}
}

// Add handles POST /api/v1/users/me/favorites
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var req dto.AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	fav, err := h.favorites.Add(c.Context(), middleware.UserID(c), req.StoreID)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainFavorite(fav))
}

// List handles GET /api/v1/users/me/favorites
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters", "INVALID_PARAMS")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.favorites.List(c.Context(), middleware.UserID(c), req.PageIndex, req.PageSize)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromFavoriteListResult(result))
}

// Remove handles DELETE /api/v1/users/me/favorites/:storeID
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	storeID := c.Params("storeID")
	if storeID == "" {
		return badRequest(c, "store id is required", "MISSING_ID")
	}

	if err := h.favorites.Remove(c.Context(), middleware.UserID(c), storeID); err != nil {
		return domainError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
