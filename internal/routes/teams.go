package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/middleware"
	"github.com/arenapass/arenapass/internal/team"
)

// RegisterTeamRoutes wires team CRUD endpoints. Deletion is admin-only and the
// amount mutation requires at least staff.
func RegisterTeamRoutes(r fiber.Router, h *team.Handler, tokenGuard fiber.Handler) {
	group := r.Group("/teams", tokenGuard)
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Patch("/:id/amount", middleware.StaffOrAdmin(), h.UpdateAmount)
	group.Delete("/:id", middleware.AdminOnly(), h.Delete)
}
