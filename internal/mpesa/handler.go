package mpesa

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/apperr"
	"github.com/arenapass/arenapass/internal/notification"
	"github.com/arenapass/arenapass/internal/web"
)

// Acknowledgement envelopes the provider expects. Both are delivered with
// HTTP 200 so the provider never retries.
var (
	ackOK       = fiber.Map{"ResultCode": 0, "ResultDesc": "Callback received successfully"}
	ackInternal = fiber.Map{"ResultCode": 1, "ResultDesc": "Internal Server Error"}
)

// Handler exposes the STK push and callback endpoints.
type Handler struct {
	service  *Service
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewHandler constructs an M-Pesa HTTP handler.
func NewHandler(service *Service, notifier notification.Notifier, logger *slog.Logger) *Handler {
	return &Handler{service: service, notifier: notifier, logger: logger}
}

type pushRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// STKPush initiates a push payment for the team in the path.
func (h *Handler) STKPush(c *fiber.Ctx) error {
	var req pushRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	res, err := h.service.InitiatePush(c.UserContext(), c.Params("teamId"), req.PhoneNumber)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(web.OK("STK Push initiated successfully", res))
}

// Callback handles the asynchronous provider notification. Whatever happens
// internally, the provider is acknowledged so it does not retry.
func (h *Handler) Callback(c *fiber.Ctx) error {
	var envelope CallbackEnvelope
	if err := c.BodyParser(&envelope); err != nil {
		h.logger.Error("mpesa callback unreadable", slog.Any("error", err))
		return c.Status(http.StatusOK).JSON(ackInternal)
	}

	cb := envelope.Body.STKCallback
	if cb.ResultCode != 0 {
		h.logger.Info("payment failed",
			slog.Int("result_code", cb.ResultCode),
			slog.String("reason", cb.ResultDesc),
		)
		if h.notifier != nil {
			_ = h.notifier.Send(c.UserContext(), notification.Message{
				Kind:        notification.KindPaymentFailed,
				Destination: cb.CheckoutRequestID,
				Body:        cb.ResultDesc,
			})
		}
		return c.Status(http.StatusOK).JSON(ackOK)
	}

	details, err := cb.CallbackMetadata.Details()
	if err != nil {
		h.logger.Error("mpesa callback metadata incomplete", slog.Any("error", err))
		return c.Status(http.StatusOK).JSON(ackInternal)
	}

	h.logger.Info("payment successful",
		slog.Float64("amount", details.Amount),
		slog.String("receipt", details.ReceiptNumber),
		slog.Int64("transaction_date", details.TransactionDate),
		slog.Int64("phone_number", details.PhoneNumber),
	)
	if h.notifier != nil {
		_ = h.notifier.Send(c.UserContext(), notification.Message{
			Kind:        notification.KindPaymentReceived,
			Destination: fmt.Sprintf("%d", details.PhoneNumber),
			Body:        fmt.Sprintf("Payment of %.2f received, receipt %s", details.Amount, details.ReceiptNumber),
		})
	}
	return c.Status(http.StatusOK).JSON(ackOK)
}
