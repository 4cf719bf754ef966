package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/jersey"
	"github.com/arenapass/arenapass/internal/middleware"
)

// RegisterJerseyRoutes wires jersey endpoints.
func RegisterJerseyRoutes(r fiber.Router, h *jersey.Handler, tokenGuard fiber.Handler) {
	group := r.Group("/jerseys", tokenGuard)
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Delete("/:id", middleware.AdminOnly(), h.Delete)
}
