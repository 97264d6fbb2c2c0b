package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/twilio/twilio-go/twiml"

	"github.com/johnper68/whatsapp-order-bot/internal/services"
)

// WhatsAppHandler handles the Twilio WhatsApp webhook.
type WhatsAppHandler struct {
	conv *services.ConversationService
}

// NewWhatsAppHandler creates a new WhatsApp handler.
func NewWhatsAppHandler(conv *services.ConversationService) *WhatsAppHandler {
	return &WhatsAppHandler{conv: conv}
}

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio.
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	From       string `form:"From"` // WhatsApp number (whatsapp:+573001234567)
	To         string `form:"To"`
	Body       string `form:"Body"` // Message text
}

// HandleWebhook runs one conversation turn and answers with TwiML so
// Twilio delivers the reply in the same exchange.
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	if payload.From == "" || payload.Body == "" {
		// Status callbacks and media-only events carry no text.
		return c.SendStatus(fiber.StatusOK)
	}

	from := strings.TrimPrefix(payload.From, "whatsapp:")
	reply := h.conv.ProcessMessage(c.UserContext(), from, payload.Body)

	xml, err := twiml.Messages([]twiml.Element{
		&twiml.MessagingMessage{Body: reply},
	})
	if err != nil {
		log.Printf("❌ Failed to render TwiML: %v", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "text/xml")
	return c.SendString(xml)
}

// TestWebhookPayload is the JSON shape of the development endpoint.
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook processes simulated messages without Twilio, for the
// CLI harness and local development.
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	reply := h.conv.ProcessMessage(c.UserContext(), payload.From, payload.Message)
	return c.JSON(fiber.Map{
		"success":  true,
		"response": reply,
	})
}
