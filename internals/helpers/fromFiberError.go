package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FiberErrorHandler is installed as fiber.Config.ErrorHandler so anything a
// handler returns (AppError, *fiber.Error, plain error) renders the same way.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound && fe.Message == fiber.ErrNotFound.Message {
		return JsonError(c, NewNotFoundError("Route not found").WithTitle("Route not found"))
	}
	return JsonError(c, err)
}

// NotFoundRoute is mounted last to catch unmatched paths.
func NotFoundRoute(c *fiber.Ctx) error {
	return JsonError(c, NewNotFoundError("Route not found").WithTitle("Route not found"))
}
