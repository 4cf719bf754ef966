package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/arenapass/arenapass/internal/logging"
)

func setupIdempotencyApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	var invocations atomic.Int64
	app.Post("/pay", func(c *fiber.Ctx) error {
		invocations.Add(1)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"n": invocations.Load()})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &invocations, cleanup
}

func TestIdempotencyHeaderOptional(t *testing.T) {
	app, invocations, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/pay", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}

	if got := invocations.Load(); got != 2 {
		t.Fatalf("handler invoked %d times, want 2", got)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, invocations, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	send := func() (int, string) {
		req := httptest.NewRequest(fiber.MethodPost, "/pay", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, "push-1")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode, string(body)
	}

	status1, body1 := send()
	status2, body2 := send()

	if status1 != fiber.StatusOK || status2 != fiber.StatusOK {
		t.Fatalf("expected 200/200, got %d/%d", status1, status2)
	}
	if body1 != body2 {
		t.Fatalf("replayed body differs: %s vs %s", body1, body2)
	}
	if got := invocations.Load(); got != 1 {
		t.Fatalf("handler invoked %d times, want 1", got)
	}
}
