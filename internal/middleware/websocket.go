package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It runs after RequireGame and gives the connection an id that survives the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Locals set here are visible on the upgraded connection.
		c.Locals("wsConnID", uuid.New().String())
		return c.Next()
	}
}
