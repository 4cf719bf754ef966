package ticket

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/team"
	"github.com/arenapass/arenapass/internal/web"
)

// Handler exposes ticket endpoints. Team lookups resolve the embedded
// home/away records in responses.
type Handler struct {
	repo  Repository
	teams team.Repository
}

// NewHandler constructs a ticket HTTP handler.
func NewHandler(repo Repository, teams team.Repository) *Handler {
	return &Handler{repo: repo, teams: teams}
}

type createRequest struct {
	HomeTeam string       `json:"homeTeam"`
	AwayTeam string       `json:"awayTeam"`
	Venue    string       `json:"venue"`
	Date     string       `json:"date"`
	Time     string       `json:"time"`
	Types    []TicketType `json:"ticketTypes"`
}

// Create records a fixture. Both referenced teams must exist.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	if req.HomeTeam == "" || req.AwayTeam == "" || req.Venue == "" || req.Time == "" {
		return apperr.New(apperr.Validation, "homeTeam, awayTeam, venue and time are required")
	}
	if len(req.Types) == 0 {
		return apperr.New(apperr.Validation, "at least one ticket type is required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return apperr.New(apperr.Validation, "date must be YYYY-MM-DD")
	}
	for _, tt := range req.Types {
		if tt.Label == "" || tt.Price < 0 || tt.Quantity < 0 {
			return apperr.New(apperr.Validation, "ticket types need a label and non-negative price and quantity")
		}
	}
	ctx := c.UserContext()
	if _, err := h.teams.Get(ctx, req.HomeTeam); err != nil {
		return apperr.New(apperr.Validation, "homeTeam does not exist")
	}
	if _, err := h.teams.Get(ctx, req.AwayTeam); err != nil {
		return apperr.New(apperr.Validation, "awayTeam does not exist")
	}

	t := Ticket{
		ID:         uuid.NewString(),
		HomeTeamID: req.HomeTeam,
		AwayTeamID: req.AwayTeam,
		Venue:      req.Venue,
		Date:       date,
		Time:       req.Time,
		Types:      req.Types,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.repo.Create(ctx, t); err != nil {
		return apperr.Wrap(apperr.Internal, "Error creating ticket", err)
	}
	return c.Status(http.StatusCreated).JSON(web.OK("Ticket created", h.view(c, t)))
}

// List returns all tickets with their teams embedded.
func (h *Handler) List(c *fiber.Ctx) error {
	tickets, err := h.repo.List(c.UserContext())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error fetching tickets", err)
	}
	views := make([]View, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, h.view(c, t))
	}
	return c.Status(http.StatusOK).JSON(web.OK("Tickets retrieved", views))
}

// Get returns one ticket with its teams embedded.
func (h *Handler) Get(c *fiber.Ctx) error {
	t, err := h.repo.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Ticket not found")
		}
		return apperr.Wrap(apperr.Internal, "Error fetching ticket", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Ticket retrieved", h.view(c, t)))
}

// Delete removes a ticket.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Ticket not found")
		}
		return apperr.Wrap(apperr.Internal, "Error deleting ticket", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Ticket deleted", nil))
}

// view embeds team records. A dangling reference leaves the slot nil rather
// than failing the whole response.
func (h *Handler) view(c *fiber.Ctx, t Ticket) View {
	v := View{
		ID:        t.ID,
		Venue:     t.Venue,
		Date:      t.Date,
		Time:      t.Time,
		Types:     t.Types,
		CreatedAt: t.CreatedAt,
	}
	if home, err := h.teams.Get(c.UserContext(), t.HomeTeamID); err == nil {
		v.HomeTeam = &home
	}
	if away, err := h.teams.Get(c.UserContext(), t.AwayTeamID); err == nil {
		v.AwayTeam = &away
	}
	return v
}
