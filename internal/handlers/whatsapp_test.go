package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
	"github.com/johnper68/whatsapp-order-bot/internal/services"
	"github.com/johnper68/whatsapp-order-bot/internal/storage"
)

func newTestApp() *fiber.App {
	store := storage.NewMemoryStore()
	store.SeedProducts([]models.Product{{Name: "Jabón Azul", UnitValue: 5000}})

	conv := services.NewConversationService(
		services.NewSessionStore(),
		services.NewProductMatcher(store),
		services.NewFaqMatcher(store),
		services.NewOrderWriter(store),
		"",
		nil,
	)

	app := fiber.New()
	handler := NewWhatsAppHandler(conv)
	app.Post("/whatsapp", handler.HandleWebhook)
	app.Post("/test/message", handler.HandleTestWebhook)
	return app
}

func postForm(t *testing.T, app *fiber.App, from, body string) (int, string) {
	t.Helper()

	form := url.Values{"From": {from}, "Body": {body}}
	req := httptest.NewRequest("POST", "/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, string(data)
}

func TestWebhookRepliesTwiml(t *testing.T) {
	app := newTestApp()

	status, body := postForm(t, app, "whatsapp:+573001234567", "hola")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !strings.Contains(body, "<Response>") || !strings.Contains(body, "<Message>") {
		t.Fatalf("expected a TwiML document, got %q", body)
	}
	if !strings.Contains(body, "Bienvenido") {
		t.Errorf("expected the welcome menu in the reply, got %q", body)
	}

	// The session sticks to the sender: the next message continues the
	// flow.
	_, body = postForm(t, app, "whatsapp:+573001234567", "1")
	if !strings.Contains(body, "nombre completo") {
		t.Errorf("expected the name prompt, got %q", body)
	}
}

func TestWebhookIgnoresStatusCallbacks(t *testing.T) {
	app := newTestApp()

	// Delivery receipts carry no Body; they are acknowledged, not
	// answered.
	status, body := postForm(t, app, "whatsapp:+573001234567", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if strings.Contains(body, "<Message>") {
		t.Errorf("status callback should not produce a reply, got %q", body)
	}
}

func TestTestEndpointReturnsJSON(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/test/message", strings.NewReader(`{"from":"+573001234567","message":"hola"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !parsed.Success || !strings.Contains(parsed.Response, "Bienvenido") {
		t.Errorf("unexpected test reply: %+v", parsed)
	}
}
