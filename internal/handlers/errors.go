package handlers

import (
	"errors"

	"produtos/internal/services"
	"produtos/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Client messages for binding failures.
const (
	msgInvalidBody = "Requisição inválida."
	msgInvalidID   = "ID inválido."
	msgInternal    = "Erro interno do servidor."
)

// ErrorHandler returns the fiber.ErrorHandler used by the app.
//
// Argument and validation errors become 400 with a JSON list of messages.
// Fiber's own errors keep their status. Everything else is a 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var argErr *services.ArgumentError
		if errors.As(err, &argErr) {
			return c.Status(fiber.StatusBadRequest).JSON([]string{argErr.Message})
		}

		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			return c.Status(fiber.StatusBadRequest).JSON([]string(validationErrs))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		logger.Error("Unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": msgInternal,
			"error":   err.Error(),
		})
	}
}
