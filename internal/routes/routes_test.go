package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/config"
	"github.com/arenapass/arenapass/internal/logging"
	"github.com/arenapass/arenapass/internal/mpesa"
	"github.com/arenapass/arenapass/internal/stellar"
	"github.com/arenapass/arenapass/internal/web"
)

const testSecretSeed = "SFAKESEEDNEVERSERIALIZED"

type staticProvisioner struct{}

func (staticProvisioner) Provision(_ context.Context) (stellar.Account, error) {
	return stellar.Account{
		PublicKey: "GFAKEPUBLICKEY",
		SecretKey: testSecretSeed,
		Status:    stellar.StatusComplete,
	}, nil
}

type stubDaraja struct{}

func (stubDaraja) AccessToken(_ context.Context) (string, error) { return "token", nil }

func (stubDaraja) STKPush(_ context.Context, _ string, _ mpesa.STKPushRequest) (mpesa.STKPushResponse, error) {
	return mpesa.STKPushResponse{CheckoutRequestID: "ws_CO_1", ResponseDescription: "Success"}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		AppName:   "arenapass-test",
		AppEnv:    "test",
		JWTSecret: "integration-secret",
		APIKey:    "integration-key",
		TokenTTL:  time.Hour,
	}
	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler(logging.Discard())})
	err := Setup(app, Deps{
		Cfg:         cfg,
		Logger:      logging.Discard(),
		Provisioner: staticProvisioner{},
		Mpesa:       stubDaraja{},
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, payload
}

func register(t *testing.T, app *fiber.App, phone string, admin bool) string {
	t.Helper()
	body := `{"phoneNumber":"` + phone + `","password":"pass123","is_admin":` + boolStr(admin) + `}`
	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/auth/register", body, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.StatusCode, payload)
	}

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if out.Data.Token == "" {
		t.Fatalf("register returned no token: %s", payload)
	}
	return out.Data.Token
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func TestRegisterNeverExposesSecretKey(t *testing.T) {
	app := newTestApp(t)

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/auth/register",
		`{"phoneNumber":"254700000001","password":"pass123"}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, payload)
	}
	if strings.Contains(string(payload), testSecretSeed) {
		t.Fatalf("secret key leaked into registration response: %s", payload)
	}
	if !strings.Contains(string(payload), "GFAKEPUBLICKEY") {
		t.Fatalf("public key absent from registration response: %s", payload)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "254700000002", false)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/login",
		`{"phoneNumber":"254700000002","password":"pass123"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/auth/login",
		`{"phoneNumber":"254700000002","password":"wrong"}`, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d: %s", resp.StatusCode, payload)
	}
}

func TestTeamRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/teams/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestTeamLifecycleWithRoles(t *testing.T) {
	app := newTestApp(t)
	userToken := register(t, app, "254700000003", false)
	adminToken := register(t, app, "254700000004", true)

	authed := func(token string) map[string]string {
		return map[string]string{fiber.HeaderAuthorization: "Bearer " + token}
	}

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/teams/",
		`{"name":"Gor Mahia","issuer":"GISSUER","description":"club","logo":"logo.png","amount":250}`,
		authed(userToken))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create team: expected 201, got %d: %s", resp.StatusCode, payload)
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("decode team: %v", err)
	}

	// Duplicate name is rejected.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/teams/",
		`{"name":"Gor Mahia","issuer":"GISSUER","description":"club","logo":"logo.png"}`,
		authed(userToken))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate team: expected 400, got %d", resp.StatusCode)
	}

	// Amount mutation needs staff or admin.
	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/teams/"+created.Data.ID+"/amount",
		`{"amount":500}`, authed(userToken))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("amount as user: expected 403, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/teams/"+created.Data.ID+"/amount",
		`{"amount":500}`, authed(adminToken))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("amount as admin: expected 200, got %d", resp.StatusCode)
	}

	// Deletion is admin-only.
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/teams/"+created.Data.ID, "", authed(userToken))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("delete as user: expected 403, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/teams/"+created.Data.ID, "", authed(adminToken))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete as admin: expected 200, got %d", resp.StatusCode)
	}
}

func TestUserRoutesRequireAPIKey(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "254700000005", false)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/users/", "", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without api key, got %d", resp.StatusCode)
	}

	resp, payload := doJSON(t, app, fiber.MethodGet, "/api/users/", "",
		map[string]string{"X-API-Key": "integration-key"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with api key, got %d", resp.StatusCode)
	}
	if strings.Contains(string(payload), testSecretSeed) {
		t.Fatalf("secret key leaked into user listing: %s", payload)
	}
}

func TestSTKPushEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := register(t, app, "254700000006", false)
	authed := map[string]string{fiber.HeaderAuthorization: "Bearer " + token}

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/teams/",
		`{"name":"AFC Leopards","issuer":"GISSUER","description":"club","logo":"logo.png","amount":300}`, authed)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create team: expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("decode team: %v", err)
	}

	resp, payload = doJSON(t, app, fiber.MethodPost, "/api/mpesa/stk/"+created.Data.ID,
		`{"phoneNumber":"254700000006"}`, authed)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stk push: expected 200, got %d: %s", resp.StatusCode, payload)
	}
	if !strings.Contains(string(payload), "ws_CO_1") {
		t.Fatalf("checkout id missing from response: %s", payload)
	}

	// Unknown team resolves before the provider round trip.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/mpesa/stk/missing",
		`{"phoneNumber":"254700000006"}`, authed)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("stk push unknown team: expected 404, got %d", resp.StatusCode)
	}
}

func TestCallbackIsPublic(t *testing.T) {
	app := newTestApp(t)

	resp, payload := doJSON(t, app, fiber.MethodPost, "/api/mpesa/callback",
		`{"Body":{"stkCallback":{"ResultCode":1032,"ResultDesc":"cancelled"}}}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("callback: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(payload), "Callback received successfully") {
		t.Fatalf("unexpected ack: %s", payload)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", resp.StatusCode)
	}
}
