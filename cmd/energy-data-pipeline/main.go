package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/vkleiv/energy-data-pipeline/internal/api/http"
	"github.com/vkleiv/energy-data-pipeline/internal/config"
	"github.com/vkleiv/energy-data-pipeline/internal/dataset"
	"github.com/vkleiv/energy-data-pipeline/internal/scheduler"
	"github.com/vkleiv/energy-data-pipeline/internal/source"
	"github.com/vkleiv/energy-data-pipeline/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Record sources: remote document store for production data, local CSV
	// for weather data.
	mongoSource := source.NewMongo(source.MongoConfig{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		Collection:     cfg.MongoCollection,
		ConnectTimeout: cfg.MongoTimeout,
	})
	csvSource := source.NewCSVFile(cfg.WeatherCSVPath, "")

	// Snapshot store holding the latest normalized tables.
	memStore := store.NewMemory()

	// Core service running the ingestion pipeline.
	service := dataset.NewService(mongoSource, csvSource, memStore)

	// Background refresh of the production snapshot.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "energy-data-pipeline",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTPTimeout,
		WriteTimeout:          cfg.HTTPTimeout,
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
			"service": "energy-data-pipeline",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

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
	if err := mongoSource.Close(shutdownCtx); err != nil {
		log.Printf("error closing document store client: %v", err)
	}
}
