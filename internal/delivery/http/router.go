package http

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hkweather/backend/internal/service"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, dashboardSvc *service.DashboardService, logger *slog.Logger, fetchLimit int) {
	handler := NewHandler(dashboardSvc, logger, fetchLimit)

	api := app.Group("/api")
	{
		api.Get("/health", handler.HealthCheck)

		api.Get("/stations", handler.GetStations)
		api.Get("/stations/nearest", handler.GetNearestStation)

		api.Get("/weather", handler.GetAllWeather)
		api.Get("/weather/:stationId", handler.GetStationWeather)
	}
}

// SetupStatic serves the frontend bundle from dir and falls back to
// index.html for client-side routes. Register it after SetupRoutes.
func SetupStatic(app *fiber.App, dir string) {
	app.Static("/", dir)

	index := filepath.Join(dir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
}
