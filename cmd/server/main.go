package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/hkweather/backend/internal/config"
	"github.com/hkweather/backend/internal/delivery/http"
	"github.com/hkweather/backend/internal/logging"
	"github.com/hkweather/backend/internal/repository/memory"
	"github.com/hkweather/backend/internal/service"
)

var version = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logr := logging.New(cfg, version, "hk-weather")

	// Dependency Injection: Cache
	cache := memory.NewCache()

	// Dependency Injection: Services
	stationClient := service.NewStationClient(cfg.StationsURL, cfg.HTTPTimeout)
	weatherSvc := service.NewWeatherService(cfg.HTTPTimeout)
	dashboardSvc := service.NewDashboardService(stationClient, weatherSvc, cache, logr)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "HK Weather API " + version,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * cfg.HTTPTimeout,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency}) ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, dashboardSvc, logr, cfg.FetchLimit)
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		http.SetupStatic(app, cfg.StaticDir)
	} else {
		logr.Warn("frontend bundle not found, serving API only", "dir", cfg.StaticDir)
	}

	// Graceful shutdown
	go func() {
		logr.Info("server starting",
			"port", cfg.Port,
			"stations_url", strings.SplitN(cfg.StationsURL, "?", 2)[0],
			"fetch_limit", cfg.FetchLimit,
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logr.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logr.Error("server forced to shutdown", "err", err)
	}
	logr.Info("server exited gracefully")
}
