package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wellcheck/wellcheck-api/auth"
)

// RequireAuth gates every protected route: a request without a usable
// bearer token is rejected before any handler touches the store. The
// validated identity and the raw token are stashed in Locals for handlers
// that need them.
func RequireAuth(tokens *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		identity, err := tokens.Validate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals("userId", identity)
		c.Locals("token", tokenString)
		return c.Next()
	}
}
