package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/middleware"
	"github.com/arenapass/arenapass/internal/mpesa"
)

// RegisterMpesaRoutes wires payment initiation and the provider callback. The
// callback stays public: the provider authenticates by contract, not token.
func RegisterMpesaRoutes(r fiber.Router, h *mpesa.Handler, tokenGuard fiber.Handler, d Deps) {
	group := r.Group("/mpesa")
	if d.Cache != nil {
		group.Post("/stk/:teamId", tokenGuard, middleware.Idempotency(d.Cache, idempotencyTTL, d.Logger), h.STKPush)
	} else {
		group.Post("/stk/:teamId", tokenGuard, h.STKPush)
	}
	group.Post("/callback", h.Callback)
}
