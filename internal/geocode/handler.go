package geocode

import (
	"errors"
	"log/slog"

	"damagesnap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Handler serves POST /api/geocode.
func Handler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.GeocodeRequest
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
		}

		coords, err := s.Geocode(c.UserContext(), req.LocationString)
		if err == nil {
			return c.JSON(coords)
		}

		var notFound *NotFoundError
		switch {
		case errors.Is(err, ErrLocationRequired):
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(err.Error()))
		case errors.As(err, &notFound):
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError(notFound.Message))
		case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrUnparseable):
			return models.RespondWithError(c, fiber.StatusInternalServerError, &models.AppError{Code: "INVALID_AI_RESPONSE", Message: err.Error()})
		default:
			s.logger.ErrorContext(c.UserContext(), "geocoding failed", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewUpstreamError(err.Error(), nil))
		}
	}
}
