package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nivasa/backend/internal/dto"
)

// internalError logs the underlying cause server-side and returns a
// generic 500 body so driver details never reach the client.
func internalError(c *fiber.Ctx, action string, err error) error {
	slog.Error(action, "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "Internal server error",
	})
}
