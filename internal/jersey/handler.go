package jersey

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/web"
)

const maxImageBytes = 5 << 20

// Handler exposes jersey endpoints.
type Handler struct {
	repo Repository
}

// NewHandler constructs a jersey HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Create adds a jersey from a multipart form carrying an image file.
func (h *Handler) Create(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperr.New(apperr.Validation, "Image file is required")
	}
	if fileHeader.Size > maxImageBytes {
		return apperr.New(apperr.Validation, "Image must not exceed 5 MB")
	}
	if !strings.HasPrefix(fileHeader.Header.Get(fiber.HeaderContentType), "image/") {
		return apperr.New(apperr.Validation, "Only image files are allowed")
	}

	teamName := c.FormValue("teamName")
	jerseyType := c.FormValue("type")
	if teamName == "" || jerseyType == "" {
		return apperr.New(apperr.Validation, "teamName and type are required")
	}
	price, err := strconv.ParseInt(c.FormValue("price"), 10, 64)
	if err != nil || price < 0 {
		return apperr.New(apperr.Validation, "price must be a non-negative integer")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error reading image", err)
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error reading image", err)
	}

	j := Jersey{
		ID:         uuid.NewString(),
		TeamName:   teamName,
		Type:       jerseyType,
		PlayerName: c.FormValue("playerName"),
		Price:      price,
		Image:      base64.StdEncoding.EncodeToString(raw),
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.repo.Create(c.UserContext(), j); err != nil {
		return apperr.Wrap(apperr.Internal, "Error adding jersey", err)
	}
	return c.Status(http.StatusCreated).JSON(web.OK("Jersey added successfully", j))
}

// List returns all jerseys.
func (h *Handler) List(c *fiber.Ctx) error {
	jerseys, err := h.repo.List(c.UserContext())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Error retrieving jerseys", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Jerseys retrieved", jerseys))
}

// Get returns a jersey by identifier.
func (h *Handler) Get(c *fiber.Ctx) error {
	j, err := h.repo.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Jersey not found")
		}
		return apperr.Wrap(apperr.Internal, "Error retrieving jersey", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Jersey retrieved", j))
}

// Delete removes a jersey.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.New(apperr.NotFound, "Jersey not found")
		}
		return apperr.Wrap(apperr.Internal, "Error deleting jersey", err)
	}
	return c.Status(http.StatusOK).JSON(web.OK("Jersey deleted", nil))
}
