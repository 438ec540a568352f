package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/services"
)

// UserIDKey is the locals key carrying the authenticated user id
const UserIDKey = "user_id"

// Protected requires a valid bearer token and stores the user id in locals
func Protected(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or malformed authorization header",
			})
		}

		userID, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by Protected
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
