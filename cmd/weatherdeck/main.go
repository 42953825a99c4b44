package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "weatherdeck/internal/api/http"
	"weatherdeck/internal/config"
	"weatherdeck/internal/history"
	"weatherdeck/internal/openmeteo"
	"weatherdeck/internal/session"
	"weatherdeck/internal/settings"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Persisted user preferences and recent-search history.
	settingsStore := settings.NewStore(cfg.SettingsPath())
	settingsStore.Load()

	historyStore := history.NewStore(cfg.HistoryPath())
	historyStore.Load()

	// One client covers both Open-Meteo endpoints.
	client := openmeteo.NewClient(httpClient, cfg.GeocodingURL, cfg.ForecastURL, cfg.OutboundRPS)

	// The session drives search -> selection -> forecast -> display.
	sess := session.New(client, client, settingsStore, historyStore, cfg.HTTPTimeout)
	sess.Start()
	defer sess.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherdeck",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherdeck",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, sess, settingsStore, historyStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
