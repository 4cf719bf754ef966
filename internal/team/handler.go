package team

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/web"
)

// Handler exposes team endpoints.
type Handler struct {
	repo Repository
}

// NewHandler constructs a team HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	IPFSHash    string `json:"ipfsHash"`
	Amount      int64  `json:"amount"`
}

// Create registers a new team. Name uniqueness is enforced by the store.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	if req.Name == "" || req.Issuer == "" || req.Description == "" || req.Logo == "" {
		return apperr.New(apperr.Validation, "name, issuer, description and logo are required")
	}
	if req.Amount < 0 {
		return apperr.New(apperr.Validation, "amount must not be negative")
	}

	now := time.Now().UTC()
	t := Team{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Issuer:      req.Issuer,
		Description: req.Description,
		Logo:        req.Logo,
		IPFSHash:    req.IPFSHash,
		Amount:      req.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.Create(c.UserContext(), t); err != nil {
		if errors.Is(err, ErrExists) {
			return apperr.New(apperr.Validation, "Team with this name already exists")
		}
		return apperr.Wrap(apperr.Internal, "Error creating team", err)
	}
	return c.Status(http.StatusCreated).JSON(web.OK("Team created", t))
}

// List returns all teams.
func (h *Handler) List(c *fiber.Ctx) error {
	teams, err := h.repo.List(c.UserContext())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error retrieving teams", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Teams retrieved", teams))
}

// Get returns a team by identifier.
func (h *Handler) Get(c *fiber.Ctx) error {
	t, err := h.repo.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Team not found")
		}
		return apperr.Wrap(apperr.Internal, "Error retrieving team", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Team retrieved", t))
}

type updateRequest struct {
	Issuer      string `json:"issuer"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	IPFSHash    string `json:"ipfsHash"`
}

// Update replaces a team's mutable fields. The name and amount are immutable here;
// amount has its own endpoint.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	t := Team{
		ID:          c.Params("id"),
		Issuer:      req.Issuer,
		Description: req.Description,
		Logo:        req.Logo,
		IPFSHash:    req.IPFSHash,
	}
	if err := h.repo.Update(c.UserContext(), t); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Team not found")
		}
		return apperr.Wrap(apperr.Internal, "Error updating team", err)
	}
	updated, err := h.repo.Get(c.UserContext(), t.ID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error retrieving team", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Team updated", updated))
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// UpdateAmount mutates the team's accumulated amount.
func (h *Handler) UpdateAmount(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	if req.Amount < 0 {
		return apperr.New(apperr.Validation, "amount must not be negative")
	}
	t, err := h.repo.UpdateAmount(c.UserContext(), c.Params("id"), req.Amount)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Team not found")
		}
		return apperr.Wrap(apperr.Internal, "Error updating team amount", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Team amount updated", t))
}

// Delete removes a team.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Team not found")
		}
		return apperr.Wrap(apperr.Internal, "Error deleting team", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Team deleted", nil))
}
