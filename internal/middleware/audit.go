package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Audit writes one structured log line per request: method, path, status,
// latency and the id minted by RequestID. Errors are recorded and re-raised
// for the app error handler.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("latency", time.Since(start)),
		}
		if id, ok := c.Locals(requestIDHeader).(string); ok && id != "" {
			fields = append(fields, slog.String("request_id", id))
		}

		if err != nil {
			logger.Error("request completed", append(fields, slog.Any("error", err))...)
			return err
		}
		logger.Info("request completed", fields...)
		return nil
	}
}
