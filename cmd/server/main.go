package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gwodu/VoiceDub/internal/config"
	"github.com/gwodu/VoiceDub/internal/elevenlabs"
	"github.com/gwodu/VoiceDub/internal/handlers"
	"github.com/gwodu/VoiceDub/internal/store"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The provider credential is required; refusing to start beats failing
	// on the first request.
	apiKey := config.APIKey()
	if apiKey == "" {
		log.Fatal("ELEVENLABS_API_KEY is required")
	}

	log.Println("Initializing components...")

	translations := store.NewMemory()

	client, err := elevenlabs.NewClient(elevenlabs.Config{
		APIKey:          apiKey,
		BaseURL:         cfg.ElevenLabs.BaseURL,
		PollInterval:    time.Duration(cfg.ElevenLabs.PollIntervalSeconds) * time.Second,
		MaxPollAttempts: cfg.ElevenLabs.MaxPollAttempts,
	})
	if err != nil {
		log.Fatalf("Failed to initialize ElevenLabs client: %v", err)
	}

	// BodyLimit gets one extra MB of headroom so multipart framing does
	// not reject a file that is exactly at the upload ceiling.
	app := fiber.New(fiber.Config{
		BodyLimit: (cfg.Limits.MaxUploadMB + 1) * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	translateHandler := handlers.NewTranslateHandler(translations, client, cfg.Limits.MaxUploadMB)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	app.Post("/api/translate", translateHandler.Handle)
	app.Get("/api/languages", handlers.Languages)

	// Browser client: recorder, waveform, language picker
	app.Static("/", cfg.Web.Dir)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Println("Endpoints:")
	log.Println("   POST /api/translate  - Translate an audio clip")
	log.Println("   GET  /api/languages  - Supported languages")
	log.Println("   GET  /health         - Health check")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
