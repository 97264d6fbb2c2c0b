package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/johnper68/whatsapp-order-bot/database"
	"github.com/johnper68/whatsapp-order-bot/internal/handlers"
	"github.com/johnper68/whatsapp-order-bot/internal/models"
	"github.com/johnper68/whatsapp-order-bot/internal/routes"
	"github.com/johnper68/whatsapp-order-bot/internal/services"
	"github.com/johnper68/whatsapp-order-bot/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	store := buildStore()

	sessions := services.NewSessionStore()
	productMatcher := services.NewProductMatcher(store)
	faqMatcher := services.NewFaqMatcher(store)
	orderWriter := services.NewOrderWriter(store)

	advisor := os.Getenv("ADVISOR_PHONE")
	if advisor == "" {
		log.Println("⚠️  ADVISOR_PHONE not set - advisor handoff will apologize instead")
	}

	var notifier services.AdvisorNotifier
	twilioService, err := services.NewTwilioService()
	if err != nil {
		log.Printf("⚠️  Twilio not configured - advisor notifications disabled: %v", err)
	} else {
		notifier = twilioService
		log.Println("✅ Twilio service initialized")
	}

	conv := services.NewConversationService(sessions, productMatcher, faqMatcher, orderWriter, advisor, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The chat-platform variant: Telegram long polling instead of (or next
	// to) the WhatsApp webhook.
	if os.Getenv("BOT_CHANNEL") == "telegram" {
		token := os.Getenv("TELEGRAM_BOT_TOKEN")
		if token == "" {
			log.Fatal("TELEGRAM_BOT_TOKEN is required when BOT_CHANNEL=telegram")
		}
		telegramService, err := services.NewTelegramService(token, conv)
		if err != nil {
			log.Fatal("Failed to initialize Telegram service:", err)
		}
		go telegramService.Start(ctx)
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Pedidos Bot v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"storage":  storageType(),
			"channel":  channelType(),
			"sessions": sessions.Count(),
			"advisor":  advisor != "",
		})
	})

	routes.SetupRoutes(app, handlers.NewWhatsAppHandler(conv))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 Pedidos Bot starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("📱 Channel: %s", channelType())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

// buildStore picks the row-store backend: AppSheet by default, PostgreSQL
// with BACKEND=postgres, or an in-memory catalog for local testing.
func buildStore() storage.Store {
	switch {
	case os.Getenv("USE_MEMORY_STORE") == "true":
		log.Println("⚠️  Using in-memory storage (not for production!)")
		memory := storage.NewMemoryStore()
		memory.SeedProducts([]models.Product{
			{Name: "Jabón Azul", UnitValue: 5000},
			{Name: "Jabón Rey", UnitValue: 4500},
			{Name: "Café Molido 500g", UnitValue: 12000},
		})
		memory.SeedFaq([]models.FaqEntry{
			{Question: "¿Cuánto cuesta el envío?", Answer: "El envío cuesta $5000 dentro de la ciudad."},
			{Question: "¿Cuáles son los medios de pago?", Answer: "Aceptamos efectivo contra entrega y transferencia."},
		})
		return memory

	case os.Getenv("BACKEND") == "postgres":
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		err := database.DB.AutoMigrate(
			&models.Product{},
			&models.FaqEntry{},
			&models.Order{},
			&models.OrderItem{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")
		return storage.NewDatabaseStore(database.DB)

	default:
		return storage.NewAppSheetStore()
	}
}

func storageType() string {
	switch {
	case os.Getenv("USE_MEMORY_STORE") == "true":
		return "In-Memory (Testing)"
	case os.Getenv("BACKEND") == "postgres":
		return "PostgreSQL Database"
	default:
		return "AppSheet"
	}
}

func channelType() string {
	if os.Getenv("BOT_CHANNEL") == "telegram" {
		return "Telegram"
	}
	return "WhatsApp (Twilio)"
}
