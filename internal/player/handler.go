package player

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/web"
)

// Handler exposes player endpoints.
type Handler struct {
	repo Repository
}

// NewHandler constructs a player HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type playerRequest struct {
	Name         string `json:"name"`
	Team         string `json:"team"`
	JerseyNumber string `json:"jerseyNumber"`
	DateOfBirth  string `json:"dateOfBirth"`
	Image        string `json:"image"`
}

func (req playerRequest) validate() (time.Time, error) {
	if req.Name == "" || req.Team == "" || req.JerseyNumber == "" || req.Image == "" {
		return time.Time{}, apperr.New(apperr.Validation, "name, team, jerseyNumber and image are required")
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return time.Time{}, apperr.New(apperr.Validation, "dateOfBirth must be YYYY-MM-DD")
	}
	return dob, nil
}

// Create adds a new player.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	dob, err := req.validate()
	if err != nil {
		return err
	}

	p := Player{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Team:         req.Team,
		JerseyNumber: req.JerseyNumber,
		DateOfBirth:  dob,
		Image:        req.Image,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.repo.Create(c.UserContext(), p); err != nil {
		return apperr.Wrap(apperr.Internal, "Error adding player", err)
	}
	return c.Status(http.StatusCreated).JSON(web.OK("Player added", p))
}

// List returns all players, optionally filtered by the team query parameter.
func (h *Handler) List(c *fiber.Ctx) error {
	var (
		players []Player
		err     error
	)
	if team := c.Query("team"); team != "" {
		players, err = h.repo.FindByTeam(c.UserContext(), team)
	} else {
		players, err = h.repo.List(c.UserContext())
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error fetching players", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Players retrieved", players))
}

// Get returns a player by identifier.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.repo.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Player not found")
		}
		return apperr.Wrap(apperr.Internal, "Error fetching player", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Player retrieved", p))
}

// Update replaces a player record.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	dob, err := req.validate()
	if err != nil {
		return err
	}

	p := Player{
		ID:           c.Params("id"),
		Name:         req.Name,
		Team:         req.Team,
		JerseyNumber: req.JerseyNumber,
		DateOfBirth:  dob,
		Image:        req.Image,
	}
	if err := h.repo.Update(c.UserContext(), p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Player not found")
		}
		return apperr.Wrap(apperr.Internal, "Error updating player", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Player updated", p))
}

// Delete removes a player.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Player not found")
		}
		return apperr.Wrap(apperr.Internal, "Error deleting player", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Player deleted", nil))
}
