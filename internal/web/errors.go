package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/apperr"
)

// ErrorHandler renders every error as the uniform response envelope. Unknown
// faults are logged with detail but surface a generic message only.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			if ae.Kind == apperr.Internal || ae.Kind == apperr.Provider {
				logger.Error("request failed", slog.String("path", c.Path()), slog.Any("error", err))
			}
			return c.Status(ae.Status()).JSON(Fail(ae.Message, ae.Detail))
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(Fail(fe.Message, ""))
		}

		logger.Error("unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(Fail("Server error", ""))
	}
}
