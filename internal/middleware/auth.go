// Package middleware provides authentication, logging, metrics and
// rate-limiting middleware for the application.
package middleware

import (
	"strings"

	"ripple/internal/identity"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

var authenticator identity.Authenticator

// InitAuth wires the identity collaborator used by AuthRequired.
func InitAuth(a identity.Authenticator) {
	authenticator = a
}

// AuthRequired enforces authentication for protected routes. On success the
// verified identity is stored in c.Locals("userID") / c.Locals("username").
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authorization header required"))
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid authorization header format"))
	}

	id, err := authenticator.Authenticate(c.UserContext(), parts[1])
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	c.Locals("userID", id.ID)
	c.Locals("username", id.Username)

	return c.Next()
}
