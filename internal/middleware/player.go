package middleware

import (
	"github.com/benbeisheim/xxlchess-backend/internal/model"
	"github.com/gofiber/fiber/v2"
)

// EnsurePlayerID reads the caller's id from the X-Player-ID header or the
// playerId query parameter and stores it in the request locals.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			// Browsers cannot set headers on a websocket handshake
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		if playerID == model.ComputerPlayerID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": model.ErrReservedPlayerID.Error(),
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}
