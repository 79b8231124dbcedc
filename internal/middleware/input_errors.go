package middleware

import (
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// HandleInputErrors stops the request with 400 and the collected validation
// failures when any rule before it failed.
func HandleInputErrors(c *fiber.Ctx) error {
	if errs := validation.Errors(c); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}
	return c.Next()
}
