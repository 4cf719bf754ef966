package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/user"
)

// RegisterUserRoutes wires read-only user endpoints behind the shared API key.
func RegisterUserRoutes(r fiber.Router, h *user.Handler, apiKeyGuard fiber.Handler) {
	group := r.Group("/users", apiKeyGuard)
	group.Get("/", h.List)
	group.Get("/:phoneNumber", h.GetByPhone)
}
