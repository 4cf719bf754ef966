package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/web"
)

// Handler exposes registration and login endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	IsAdmin     bool   `json:"is_admin"`
	IsStaff     bool   `json:"is_staff"`
}

type authResponse struct {
	Token            string `json:"token"`
	StellarPublicKey string `json:"stellarPublicKey"`
	IsAdmin          bool   `json:"is_admin"`
	IsStaff          bool   `json:"is_staff"`
	StellarStatus    string `json:"stellarStatus,omitempty"`
	StellarDetail    string `json:"stellarDetail,omitempty"`
}

// Register creates a user with an auto-provisioned Stellar account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	res, err := h.service.Register(c.UserContext(), RegisterInput{
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		IsAdmin:     req.IsAdmin,
		IsStaff:     req.IsStaff,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(web.OK("User registered", authResponse{
		Token:            res.Token,
		StellarPublicKey: res.User.StellarPublicKey,
		IsAdmin:          res.User.IsAdmin,
		IsStaff:          res.User.IsStaff,
		StellarStatus:    res.User.ProvisioningStatus,
		StellarDetail:    res.StellarDetail,
	}))
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// Login verifies credentials and returns a token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	res, err := h.service.Login(c.UserContext(), req.PhoneNumber, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(web.OK("Login successful", authResponse{
		Token:            res.Token,
		StellarPublicKey: res.User.StellarPublicKey,
		IsAdmin:          res.User.IsAdmin,
		IsStaff:          res.User.IsStaff,
	}))
}
