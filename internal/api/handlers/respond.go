package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/apierr"
)

// writeError translates a service-layer error into an HTTP response,
// mapping apierr.Kind to the appropriate status code.
func writeError(c *fiber.Ctx, err error) error {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		status := fiber.StatusInternalServerError
		switch apiErr.Kind {
		case apierr.InvalidArgument:
			status = fiber.StatusBadRequest
		case apierr.ServiceUnavailable:
			status = fiber.StatusServiceUnavailable
		case apierr.Internal, apierr.UpstreamLabelerFailure:
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{"error": apiErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
