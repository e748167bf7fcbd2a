package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/transport/httpserver/dto"
	"store-locator-service/internal/transport/httpserver/middleware"
	"store-locator-service/internal/validator"
)

// UserHandler handles user profile and admin user-management requests.
type UserHandler struct {
	users     *service.UserService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, v *validator.Validator, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: v,
		logger:    logger,
	}
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromDomainUser(user))
}

// List handles GET /api/v1/admin/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters", "INVALID_PARAMS")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	page, size := normalizePage(req.PageIndex, req.PageSize)

	users, total, err := h.users.List(c.Context(), page, size)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	resp := dto.UserListResponse{
		Users:      make([]dto.UserResponse, len(users)),
		Pagination: dto.NewPaginationMeta(total, page, size),
	}
	for i := range users {
		resp.Users[i] = dto.FromDomainUser(&users[i])
	}

	return c.JSON(resp)
}

// Deactivate handles DELETE /api/v1/admin/users/:id
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id is required", "MISSING_ID")
	}

	if err := h.users.Deactivate(c.Context(), id); err != nil {
		return domainError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
