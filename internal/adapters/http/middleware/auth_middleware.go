package middleware

import (
	"strings"

	"daotrack/internal/config"
	"daotrack/internal/core/domain"
	"daotrack/internal/pkg/jwt"
	"daotrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys for the authenticated identity. Set once per request by
// AuthMiddleware and read-only afterwards.
const (
	LocalUserID   = "userID"
	LocalUserName = "userName"
	LocalRole     = "role"
)

// AuthMiddleware derives the caller identity from the bearer token.
// A missing, invalid or expired credential is rejected with 401; the
// identity never changes mid-request.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserName, claims.Name)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RequirePermission gates a route on the role/operation matrix
func RequirePermission(p domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !domain.Allowed(domain.Role(role), p) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if domain.Role(role) != domain.RoleAdmin {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// Actor returns the authenticated caller's id and role
func Actor(c *fiber.Ctx) (string, domain.Role) {
	userID, _ := c.Locals(LocalUserID).(string)
	role, _ := c.Locals(LocalRole).(string)
	return userID, domain.Role(role)
}
