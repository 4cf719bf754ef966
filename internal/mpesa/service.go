// Package mpesa initiates Daraja STK push payments for teams and processes the
// asynchronous provider callback.
package mpesa

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/config"
	"github.com/arenapass/arenapass/internal/team"
)

const transactionType = "CustomerPayBillOnline"

// PushResult is returned to the caller immediately; payment completion arrives
// later on the callback endpoint.
type PushResult struct {
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseDescription string `json:"ResponseDescription"`
}

// Service resolves a team's charge and drives the provider round trip.
type Service struct {
	teams    team.Repository
	provider Provider
	cfg      config.Mpesa
	now      func() time.Time
	logger   *slog.Logger
}

// NewService constructs an M-Pesa service. now defaults to time.Now.
func NewService(teams team.Repository, provider Provider, cfg config.Mpesa, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{teams: teams, provider: provider, cfg: cfg, now: now, logger: logger}
}

// Timestamp renders the provider's YYYYMMDDHHmmss local-clock format.
func Timestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// Password derives the provider password for a timestamp.
func Password(shortcode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
}

// InitiatePush starts an STK push charging the team's amount to the payer's
// phone. The team must exist before any provider call is made.
func (s *Service) InitiatePush(ctx context.Context, teamID, phoneNumber string) (PushResult, error) {
	if phoneNumber == "" {
		return PushResult{}, apperr.New(apperr.Validation, "phoneNumber is required")
	}

	t, err := s.teams.Get(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			return PushResult{}, apperr.New(apperr.NotFound, "Team not found")
		}
		return PushResult{}, apperr.Wrap(apperr.Internal, "Error fetching team", err)
	}

	timestamp := Timestamp(s.now())
	password := Password(s.cfg.Shortcode, s.cfg.Passkey, timestamp)

	// Provider failures surface their detail in the error envelope.
	token, err := s.provider.AccessToken(ctx)
	if err != nil {
		return PushResult{}, apperr.WithDetail(apperr.Provider, "Error initiating M-Pesa payment", err.Error())
	}

	resp, err := s.provider.STKPush(ctx, token, STKPushRequest{
		BusinessShortCode: s.cfg.Shortcode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   transactionType,
		Amount:            t.Amount,
		PartyA:            phoneNumber,
		PartyB:            s.cfg.Shortcode,
		PhoneNumber:       phoneNumber,
		CallBackURL:       s.cfg.CallbackURL,
		AccountReference:  t.Name,
		TransactionDesc:   fmt.Sprintf("Payment for %s", t.Name),
	})
	if err != nil {
		return PushResult{}, apperr.WithDetail(apperr.Provider, "Error initiating M-Pesa payment", err.Error())
	}

	s.logger.Info("stk push initiated",
		slog.String("team", t.Name),
		slog.String("checkout_request_id", resp.CheckoutRequestID),
	)
	return PushResult{CheckoutRequestID: resp.CheckoutRequestID, ResponseDescription: resp.ResponseDescription}, nil
}
