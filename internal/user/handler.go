package user

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/web"
)

// Handler exposes read-only user endpoints guarded by the shared API key.
type Handler struct {
	repo Repository
}

// NewHandler constructs a user HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns every user, stripped of credentials.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.repo.List(c.UserContext())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error fetching users", err)
	}
	out := make([]Public, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.Status(http.StatusOK).JSON(web.OK("Users retrieved", out))
}

// GetByPhone returns a single user looked up by phone number.
func (h *Handler) GetByPhone(c *fiber.Ctx) error {
	u, err := h.repo.FindByPhone(c.UserContext(), c.Params("phoneNumber"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return apperr.Wrap(apperr.Internal, "Error fetching user", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("User retrieved", u.Public()))
}
