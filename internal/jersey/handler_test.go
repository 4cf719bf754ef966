package jersey

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/arenapass/arenapass/internal/logging"
	"github.com/arenapass/arenapass/internal/web"
)

func newJerseyApp() *fiber.App {
	h := NewHandler(NewMemoryRepository())
	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler(logging.Discard())})
	app.Post("/jerseys", h.Create)
	return app
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, contentType string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(fileData); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestCreateJerseyEncodesImage(t *testing.T) {
	app := newJerseyApp()
	imageData := []byte{0x89, 0x50, 0x4e, 0x47}

	body, contentType := multipartBody(t, map[string]string{
		"teamName": "Gor Mahia",
		"type":     "home",
		"price":    "1500",
	}, "image", "kit.png", "image/png", imageData)

	req := httptest.NewRequest(fiber.MethodPost, "/jerseys", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var out struct {
		Data Jersey `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.Image != base64.StdEncoding.EncodeToString(imageData) {
		t.Fatalf("image not base64 encoded: %s", out.Data.Image)
	}
	if out.Data.Price != 1500 {
		t.Fatalf("price %d, want 1500", out.Data.Price)
	}
}

func TestCreateJerseyRejectsNonImage(t *testing.T) {
	app := newJerseyApp()

	body, contentType := multipartBody(t, map[string]string{
		"teamName": "Gor Mahia",
		"type":     "home",
		"price":    "1500",
	}, "image", "kit.txt", "text/plain", []byte("not an image"))

	req := httptest.NewRequest(fiber.MethodPost, "/jerseys", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateJerseyRequiresImage(t *testing.T) {
	app := newJerseyApp()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("teamName", "Gor Mahia")
	_ = writer.WriteField("type", "home")
	_ = writer.WriteField("price", "1500")
	writer.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/jerseys", &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
