package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/middleware"
	"github.com/arenapass/arenapass/internal/ticket"
)

// RegisterTicketRoutes wires ticket endpoints.
func RegisterTicketRoutes(r fiber.Router, h *ticket.Handler, tokenGuard fiber.Handler) {
	group := r.Group("/tickets", tokenGuard)
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Delete("/:id", middleware.AdminOnly(), h.Delete)
}
