package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"kucukaslan/bridge/api"
	"kucukaslan/bridge/buildinfo"
	"kucukaslan/bridge/config"
	"kucukaslan/bridge/database"
	"kucukaslan/bridge/privacy"
	"kucukaslan/bridge/services"

	_ "kucukaslan/bridge/docs" // Import generated docs
)

// @title Analytics Bridge API
// @version 1.0
// @description Bridge between untyped analytics calls and the typed collection core, with property coercion and a privacy rule engine
// @BasePath /
// @schemes http

const idleTimeout = 5 * time.Second

func main() {
	// Set application start time for accurate uptime tracking
	buildinfo.SetStartTime(time.Now())

	// Log build information
	info := buildinfo.GetInfo()
	log.Printf("Starting application\nVersion: %s, Commit: %s, BuildDate: %s, GoVersion: %s, Hostname: %s",
		info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Hostname)
	// Load configuration
	cfg := config.Load()

	// Initialize ClickHouse connection
	if err := database.InitClickHouse(&cfg.ClickHouse); err != nil {
		log.Fatalf("Failed to initialize ClickHouse: %v", err)
	}

	// Initialize Redis connection
	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// The privacy rule store is created once per process. A snapshot mirrored
	// to Redis by a previous run is restored on top of the defaults.
	ruleStore := privacy.NewStore()
	mirror := database.GetRuleSnapshotMirror()
	if snap, err := mirror.LoadSnapshot(context.Background()); err != nil {
		log.Printf("Failed to load privacy rule snapshot, keeping defaults: %v", err)
	} else if snap != nil {
		ruleStore.Restore(snap)
		log.Println("Privacy rule snapshot restored from Redis")
	}

	collector, err := services.NewCollector(database.GetClickHouseDB(), &cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to initialize collector: %v", err)
	}

	bridgeService, err := services.NewBridgeService(collector, ruleStore, mirror)
	if err != nil {
		log.Fatalf("Failed to initialize BridgeService: %v", err)
	}

	httpHandler := api.NewBridgeHandler(bridgeService)

	app := fiber.New(fiber.Config{
		IdleTimeout: idleTimeout,
	})

	app.Use(recover.New())

	// redirect to swagger docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/", fiber.StatusMovedPermanently)
	})

	// Health check endpoint
	app.Get("/health", api.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Bridge endpoints
	app.Post("/bridge", httpHandler.Dispatch)
	app.Get("/privacy/rules", httpHandler.GetPrivacyRules)

	// Listen from a different goroutine
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)                    // Create channel to signify a signal being sent
	signal.Notify(c, os.Interrupt, syscall.SIGTERM) // When an interrupt or termination signal is sent, notify the channel

	<-c // This blocks the main thread until an interrupt is received
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()

	fmt.Println("Running cleanup tasks...")

	// Shutdown collector batcher (flushes remaining events)
	if err := services.ShutdownSink(collector); err != nil {
		log.Printf("Error shutting down collector batcher: %v", err)
	}

	// Close database connections
	if err := database.CloseClickHouse(); err != nil {
		log.Printf("Error closing ClickHouse: %v", err)
	}

	if err := database.CloseRedis(); err != nil {
		log.Printf("Error closing Redis: %v", err)
	}

	fmt.Println("Fiber was successful shutdown.")
}
