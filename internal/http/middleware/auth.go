package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studentfolio/internal/auth"
)

// UserIDLocalKey is the key under which RequireAuth stores the
// authenticated user's ID in Fiber's context locals.
const UserIDLocalKey = "user_id"

// RequireAuth verifies the Authorization bearer token and stores the
// authenticated user ID in context locals. Missing or invalid tokens
// short-circuit with 401.
func RequireAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return unauthorized(c, "authorization header must be a bearer token")
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID set by RequireAuth, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"request_id": rid,
		"error": fiber.Map{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
