// Package middleware provides authentication, authorization, logging and
// rate limiting middleware for the application.
package middleware

import (
	"context"
	"strings"

	"quill/internal/auth"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired returns middleware that enforces authentication for protected
// routes. On success the decoded identity is stored in Fiber locals
// ("userID", "userEmail", "userRole") and the user ID is synced to the
// request context for the context-aware logger.
func AuthRequired(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		c.Locals("userID", identity.UserID)
		c.Locals("userEmail", identity.Email)
		c.Locals("userRole", identity.Role)

		ctx := context.WithValue(c.UserContext(), UserIDKey, identity.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RoleRequired returns middleware that rejects callers whose token's role
// claim does not equal the required role. Must be placed after AuthRequired.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, _ := c.Locals("userRole").(string)
		if claim != role {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized; "+role+" role required"))
		}
		return c.Next()
	}
}
