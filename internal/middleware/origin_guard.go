package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OriginGuard rejects cross-origin requests from anywhere but allowedOrigin.
// Requests without an Origin header are not cross-origin and pass through.
func OriginGuard(allowedOrigin string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || origin == allowedOrigin {
			return c.Next()
		}
		logger.Info("rejected cross-origin request", zap.String("origin", origin), zap.String("path", c.Path()))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Error de CORS",
		})
	}
}
