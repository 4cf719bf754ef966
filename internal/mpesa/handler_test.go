package mpesa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/logging"
	"github.com/arenapass/arenapass/internal/notification"
	"github.com/arenapass/arenapass/internal/team"
	"github.com/arenapass/arenapass/internal/web"
)

type captureNotifier struct {
	messages []notification.Message
}

func (n *captureNotifier) Send(_ context.Context, message notification.Message) error {
	n.messages = append(n.messages, message)
	return nil
}

func newCallbackApp(t *testing.T) (*fiber.App, *captureNotifier) {
	t.Helper()
	svc := NewService(team.NewMemoryRepository(), &fakeProvider{}, testMpesaCfg, nil, logging.Discard())
	notifier := &captureNotifier{}
	h := NewHandler(svc, notifier, logging.Discard())

	app := fiber.New()
	app.Post("/callback", h.Callback)
	return app, notifier
}

func postCallback(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var ack map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	return resp.StatusCode, ack
}

const successCallback = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 100.0},
          {"Name": "MpesaReceiptNumber", "Value": "R1"},
          {"Name": "TransactionDate", "Value": 20240101120000},
          {"Name": "PhoneNumber", "Value": 254700000000}
        ]
      }
    }
  }
}`

func TestCallbackSuccessAcknowledged(t *testing.T) {
	app, notifier := newCallbackApp(t)

	status, ack := postCallback(t, app, successCallback)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if ack["ResultCode"] != float64(0) || ack["ResultDesc"] != "Callback received successfully" {
		t.Fatalf("unexpected ack: %v", ack)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.messages))
	}
	msg := notifier.messages[0]
	if msg.Kind != notification.KindPaymentReceived {
		t.Fatalf("notification kind %s", msg.Kind)
	}
	if msg.Destination != "254700000000" {
		t.Fatalf("notification destination %s", msg.Destination)
	}
}

func TestCallbackFailedPaymentStillAcknowledged(t *testing.T) {
	app, notifier := newCallbackApp(t)

	body := `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_9","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`
	status, ack := postCallback(t, app, body)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if ack["ResultCode"] != float64(0) {
		t.Fatalf("expected success ack for failed payment, got %v", ack)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("expected a failure notification, got %d messages", len(notifier.messages))
	}
	msg := notifier.messages[0]
	if msg.Kind != notification.KindPaymentFailed {
		t.Fatalf("notification kind %s", msg.Kind)
	}
	if msg.Destination != "ws_CO_9" || msg.Body != "Request cancelled by user" {
		t.Fatalf("notification payload %+v", msg)
	}
}

func TestSTKPushProviderFailureEnvelopeCarriesDetail(t *testing.T) {
	teams := team.NewMemoryRepository()
	tm := seedTeam(t, teams)
	provider := &failingProvider{pushErr: errors.New(`stk request: status 500: {"errorCode":"500.001.1001"}`)}
	svc := NewService(teams, provider, testMpesaCfg, nil, logging.Discard())
	h := NewHandler(svc, nil, logging.Discard())

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler(logging.Discard())})
	app.Post("/stk/:teamId", h.STKPush)

	req := httptest.NewRequest(fiber.MethodPost, "/stk/"+tm.ID, strings.NewReader(`{"phoneNumber":"254700000000"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var envelope web.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Success {
		t.Fatalf("expected failure envelope")
	}
	if !strings.Contains(envelope.Error, "500.001.1001") {
		t.Fatalf("envelope error %q missing provider detail", envelope.Error)
	}
}

func TestCallbackUnreadableBody(t *testing.T) {
	app, _ := newCallbackApp(t)

	status, ack := postCallback(t, app, "{not json")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if ack["ResultCode"] != float64(1) || ack["ResultDesc"] != "Internal Server Error" {
		t.Fatalf("expected internal ack, got %v", ack)
	}
}

func TestCallbackIncompleteMetadata(t *testing.T) {
	app, _ := newCallbackApp(t)

	body := `{"Body":{"stkCallback":{"ResultCode":0,"ResultDesc":"ok","CallbackMetadata":{"Item":[{"Name":"Amount","Value":100}]}}}}`
	status, ack := postCallback(t, app, body)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if ack["ResultCode"] != float64(1) {
		t.Fatalf("expected internal ack for missing metadata, got %v", ack)
	}
}

func TestMetadataDetails(t *testing.T) {
	meta := Metadata{Item: []MetadataItem{
		{Name: "Amount", Value: 100.0},
		{Name: "MpesaReceiptNumber", Value: "R1"},
		{Name: "TransactionDate", Value: 20240101120000.0},
		{Name: "PhoneNumber", Value: 254700000000.0},
	}}

	d, err := meta.Details()
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if d.Amount != 100 || d.ReceiptNumber != "R1" {
		t.Fatalf("amount/receipt mismatch: %+v", d)
	}
	if d.TransactionDate != 20240101120000 || d.PhoneNumber != 254700000000 {
		t.Fatalf("date/phone mismatch: %+v", d)
	}
}
