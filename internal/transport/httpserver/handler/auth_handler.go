package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/transport/httpserver/dto"
	"store-locator-service/internal/validator"
)

// AuthHandler handles registration, login and password-reset requests.
type AuthHandler struct {
	users     *service.UserService
	auth      *service.AuthService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, auth *service.AuthService, v *validator.Validator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		auth:      auth,
		validator: v,
		logger:    logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	user, err := h.users.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainUser(user))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	token, user, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        dto.FromDomainUser(user),
	})
}

// RequestPasswordReset handles POST /api/v1/auth/password-reset
//
// Always answers 202 so the endpoint cannot be used to probe which emails
// have accounts.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	if err := h.auth.RequestPasswordReset(c.Context(), req.Email); err != nil {
		h.logger.Error("password reset request failed", zap.Error(err))
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// ConfirmPasswordReset handles POST /api/v1/auth/password-reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return domainError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
