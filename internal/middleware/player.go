package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// EnsurePlayerID reads the caller's player id from the X-Player-ID header or
// the playerId query parameter and stores a copy in Locals("playerID"), since
// the id outlives the request in seats and the matchmaking queue.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := utils.CopyString(c.Get("X-Player-ID"))
		if playerID == "" {
			playerID = utils.CopyString(c.Query("playerId"))
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}
