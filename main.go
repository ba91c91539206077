package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"saasquatch/config"
	"saasquatch/middleware"
	"saasquatch/routes"
	"saasquatch/store"
	"saasquatch/utils"
	"saasquatch/worker"
)

func main() {
	logger := log.New(os.Stdout, "DISPATCH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry init failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = config.AppConfig.CORSOrigins
	app.Use(middleware.CORS(corsConfig))

	// Outbound transport shared by the dispatcher and the test-send endpoint
	mailer := utils.NewMailer(config.AppConfig.SMTP)

	// Start the dispatch worker; it owns all queue execution and runs until
	// shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dispatchWorker := worker.NewDispatchWorker(
		store.NewQueueStore(config.DB),
		mailer,
		logger,
		time.Duration(config.AppConfig.SchedulerInterval)*time.Second,
		config.AppConfig.SchedulerBatchSize,
	)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		dispatchWorker.Start(ctx)
	}()

	// Setup routes
	routes.SetupRoutes(app, config.DB, mailer)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Stop accepting requests once the shutdown signal arrives, then wait for
	// the worker to finish its cycle
	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			logger.Printf("Server shutdown error: %v", err)
		}
	}()

	logger.Printf("Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}

	cancel()
	<-workerDone
	logger.Println("Shutdown complete")
}
