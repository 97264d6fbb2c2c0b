package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/johnper68/whatsapp-order-bot/internal/handlers"
	"github.com/johnper68/whatsapp-order-bot/internal/middleware"
)

// SetupRoutes configures the webhook and development endpoints.
func SetupRoutes(app *fiber.App, whatsapp *handlers.WhatsAppHandler) {
	// Twilio posts inbound WhatsApp messages here. Signature validation is
	// skipped in development so ngrok and the CLI harness work.
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		log.Println("⚠️  WhatsApp webhook validation DISABLED for development")
		app.Post("/whatsapp", whatsapp.HandleWebhook)
	} else {
		app.Post("/whatsapp", middleware.ValidateTwilioSignature(), whatsapp.HandleWebhook)
	}

	// JSON test endpoint, no Twilio involved.
	app.Post("/test/message", whatsapp.HandleTestWebhook)
}
