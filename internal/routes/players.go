package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/middleware"
	"github.com/arenapass/arenapass/internal/player"
)

// RegisterPlayerRoutes wires player CRUD endpoints.
func RegisterPlayerRoutes(r fiber.Router, h *player.Handler, tokenGuard fiber.Handler) {
	group := r.Group("/players", tokenGuard)
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", middleware.AdminOnly(), h.Delete)
}
