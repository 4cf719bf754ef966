package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const apiKeyHeader = "X-API-Key"

// APIKeyGuard compares the shared-secret header against the configured key.
// No identity is attached; the guard only gates access.
func APIKeyGuard(key string) fiber.Handler {
	expected := []byte(key)
	return func(c *fiber.Ctx) error {
		provided := []byte(c.Get(apiKeyHeader))
		if len(provided) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
			return fiber.NewError(http.StatusForbidden, "Forbidden: invalid API key")
		}
		return c.Next()
	}
}
