package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/transport/httpserver/dto"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID = "auth_user_id"
	LocalRole   = "auth_role"
)

// TokenVerifier verifies a signed access token.
type TokenVerifier interface {
	ValidateToken(tokenString string) (*service.TokenClaims, error)
}

// RequireAuth returns a middleware that verifies the Bearer token and stores
// the caller's identity in locals.
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "missing bearer token",
				Code:  "UNAUTHORIZED",
			})
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "invalid or expired token",
				Code:  "UNAUTHORIZED",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, string(claims.Role))

		return c.Next()
	}
}

// RequireAdmin returns a middleware that rejects non-admin callers. Must run
// after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role != string(domain.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "admin access required",
				Code:  "FORBIDDEN",
			})
		}

		return c.Next()
	}
}

// UserID extracts the authenticated user's ID from locals.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
