package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAPIKeyApp() *fiber.App {
	app := fiber.New()
	app.Get("/users", APIKeyGuard("expected-key"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAPIKeyGuardAcceptsMatchingKey(t *testing.T) {
	app := newAPIKeyApp()
	req := httptest.NewRequest(fiber.MethodGet, "/users", nil)
	req.Header.Set(apiKeyHeader, "expected-key")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAPIKeyGuardRejectsWrongOrMissingKey(t *testing.T) {
	app := newAPIKeyApp()
	for _, key := range []string{"", "wrong-key"} {
		req := httptest.NewRequest(fiber.MethodGet, "/users", nil)
		if key != "" {
			req.Header.Set(apiKeyHeader, key)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("key %q: expected 403, got %d", key, resp.StatusCode)
		}
	}
}
