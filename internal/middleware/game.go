package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireGame rejects requests whose :gameId names no known game and
// stores the id in locals under "gameID".
func RequireGame(exists func(gameID string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if !exists(gameID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}
		c.Locals("gameID", gameID)
		return c.Next()
	}
}
