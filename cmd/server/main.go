package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tentworks-records/internal/adapters/http/middleware"
	"tentworks-records/internal/adapters/http/routes"
	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "tentworks-records/docs" // Swagger docs
)

// @title Tent Works Records API
// @version 1.0
// @description Records system for a tent and structures company: workers, training courses, protective equipment, documents, suppliers, materials and projects, with expiry (vigency) tracking.

// @contact.name API Support
// @contact.email soporte@tentworks.co

// @BasePath /api/v1

// startupSweepTimeout bounds the sweep run before the server starts listening
const startupSweepTimeout = 2 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed catalogs (course, equipment and document types)
	if err := config.NewSeeder(db).Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed catalogs: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Tent Works Records API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	cronService, err := routes.Setup(app, db, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to setup routes: %v", err)
	}

	// Fill blank expiry dates left by imports before serving, then schedule the daily sweep
	ctx, cancel := context.WithTimeout(context.Background(), startupSweepTimeout)
	if _, err := cronService.RunNow(ctx); err != nil {
		log.Printf("⚠️ Warning: startup vigency sweep failed: %v", err)
	}
	cancel()

	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
