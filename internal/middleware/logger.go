package middleware

import (
	"time"

	"github.com/benbeisheim/shashki-backend/internal/obslog"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request once it has been handled.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		obslog.L().Debug("http_request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
}
