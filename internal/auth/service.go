package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/secrets"
	"github.com/arenapass/arenapass/internal/stellar"
	"github.com/arenapass/arenapass/internal/user"
)

// Deliberately identical for unknown phone and wrong password so responses do
// not reveal which accounts exist.
const invalidCredentials = "Invalid credentials"

// Provisioner creates the Stellar payment identity for a new user.
type Provisioner interface {
	Provision(ctx context.Context) (stellar.Account, error)
}

// Service manages registration and login.
type Service struct {
	users       user.Repository
	secrets     secrets.Store
	provisioner Provisioner
	jwtSecret   []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewService creates an auth service.
func NewService(users user.Repository, secretStore secrets.Store, provisioner Provisioner, jwtSecret []byte, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		secrets:     secretStore,
		provisioner: provisioner,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// RegisterInput captures a registration request.
type RegisterInput struct {
	PhoneNumber string
	Password    string
	IsAdmin     bool
	IsStaff     bool
}

// Result couples a user with a freshly issued token. StellarDetail explains a
// partial provisioning outcome and is empty otherwise.
type Result struct {
	User          user.User
	Token         string
	StellarDetail string
}

// Register provisions a Stellar account and persists the user. The duplicate
// check runs before any external call. A failed sponsorship submission does
// not abort: the user is stored with a partial provisioning status.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Result, error) {
	if input.PhoneNumber == "" || input.Password == "" {
		return Result{}, apperr.New(apperr.Validation, "phoneNumber and password are required")
	}

	if _, err := s.users.FindByPhone(ctx, input.PhoneNumber); err == nil {
		return Result{}, apperr.New(apperr.Validation, "User already exists")
	} else if !errors.Is(err, user.ErrNotFound) {
		return Result{}, apperr.Wrap(apperr.Internal, "Error checking user", err)
	}

	// Provisioner errors carry no secrets; their detail goes to the caller.
	account, err := s.provisioner.Provision(ctx)
	if err != nil {
		return Result{}, apperr.WithDetail(apperr.Provider, "Error creating Stellar account", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.Internal, "Error hashing password", err)
	}

	u := user.User{
		ID:                 uuid.NewString(),
		PhoneNumber:        input.PhoneNumber,
		PasswordHash:       hash,
		StellarPublicKey:   account.PublicKey,
		IsAdmin:            input.IsAdmin,
		IsStaff:            input.IsStaff,
		ProvisioningStatus: account.Status,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrExists) {
			return Result{}, apperr.New(apperr.Validation, "User already exists")
		}
		return Result{}, apperr.Wrap(apperr.Internal, "Error saving user", err)
	}

	// Secret keys live in the restricted store only. A write failure is logged
	// but does not undo the registration.
	if err := s.secrets.Put(ctx, u.ID, account.SecretKey); err != nil {
		s.logger.Error("storing stellar secret failed", slog.String("user_id", u.ID), slog.Any("error", err))
	}

	token, err := SignToken(u, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.Internal, "Error issuing token", err)
	}

	s.logger.Info("user registered",
		slog.String("user_id", u.ID),
		slog.String("stellar_status", u.ProvisioningStatus),
	)
	return Result{User: u, Token: token, StellarDetail: account.Detail}, nil
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, phoneNumber, password string) (Result, error) {
	u, err := s.users.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Result{}, apperr.New(apperr.Auth, invalidCredentials)
		}
		return Result{}, apperr.Wrap(apperr.Internal, "Error fetching user", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return Result{}, apperr.New(apperr.Auth, invalidCredentials)
	}

	token, err := SignToken(u, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.Internal, "Error issuing token", err)
	}
	return Result{User: u, Token: token}, nil
}
