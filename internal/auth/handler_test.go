package auth

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/logging"
	"github.com/arenapass/arenapass/internal/stellar"
	"github.com/arenapass/arenapass/internal/web"
)

func TestRegisterResponseCarriesPartialDetail(t *testing.T) {
	prov := &fakeProvisioner{account: stellar.Account{
		PublicKey: "GPART",
		SecretKey: "SPART",
		Status:    stellar.StatusPartial,
		Detail:    "tx_failed,op_no_trust",
	}}
	svc, _, _ := newTestService(prov)
	h := NewHandler(svc)

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler(logging.Discard())})
	app.Post("/register", h.Register)

	req := httptest.NewRequest(fiber.MethodPost, "/register",
		strings.NewReader(`{"phoneNumber":"254700000010","password":"pass123"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			StellarStatus string `json:"stellarStatus"`
			StellarDetail string `json:"stellarDetail"`
		} `json:"data"`
	}
	payload := json.NewDecoder(resp.Body)
	if err := payload.Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.StellarStatus != stellar.StatusPartial {
		t.Fatalf("status %s, want %s", out.Data.StellarStatus, stellar.StatusPartial)
	}
	if out.Data.StellarDetail != "tx_failed,op_no_trust" {
		t.Fatalf("detail %q, want the provisioning failure cause", out.Data.StellarDetail)
	}
}

func TestRegisterResponseOmitsDetailWhenComplete(t *testing.T) {
	prov := &fakeProvisioner{account: stellar.Account{
		PublicKey: "GFULL",
		SecretKey: "SFULL",
		Status:    stellar.StatusComplete,
	}}
	svc, _, _ := newTestService(prov)
	h := NewHandler(svc)

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler(logging.Discard())})
	app.Post("/register", h.Register)

	req := httptest.NewRequest(fiber.MethodPost, "/register",
		strings.NewReader(`{"phoneNumber":"254700000011","password":"pass123"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, _ := raw["data"].(map[string]any)
	if _, present := data["stellarDetail"]; present {
		t.Fatalf("stellarDetail should be omitted for complete provisioning: %v", data)
	}
}
