package http

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hkweather/backend/internal/domain"
	"github.com/hkweather/backend/internal/service"
	"github.com/hkweather/backend/pkg/utils"
)

// maxFetchLimit caps ?limit= on the all-stations endpoint
const maxFetchLimit = 50

// Handler contains all HTTP handlers
type Handler struct {
	dashboardSvc *service.DashboardService
	logger       *slog.Logger
	fetchLimit   int
}

// NewHandler creates a new handler
func NewHandler(dashboardSvc *service.DashboardService, logger *slog.Logger, fetchLimit int) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		logger:       logger,
		fetchLimit:   fetchLimit,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// GetStations returns the station list
func (h *Handler) GetStations(c *fiber.Ctx) error {
	stations, err := h.dashboardSvc.Stations(c.UserContext())
	if err != nil {
		h.log(c).Error("fetching weather stations", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather stations")
	}

	return c.JSON(stations)
}

// GetNearestStation returns the station closest to ?lat= and ?lon=
func (h *Handler) GetNearestStation(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil || !utils.ValidCoordinate(lat, lon) {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
	}

	station, dist, err := h.dashboardSvc.Nearest(c.UserContext(), lat, lon)
	if errors.Is(err, domain.ErrStationNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Station not found")
	}
	if err != nil {
		h.log(c).Error("finding nearest station", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather stations")
	}

	return c.JSON(domain.NearestStationResponse{
		Station:    station,
		DistanceKM: dist,
	})
}

// GetStationWeather returns the reading for a single station
func (h *Handler) GetStationWeather(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("stationId"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Station not found")
	}

	reading, err := h.dashboardSvc.ReadingFor(c.UserContext(), id)
	if errors.Is(err, domain.ErrStationNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Station not found")
	}
	if err != nil {
		h.log(c).Error("fetching weather data", "station_id", id, "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
	}

	return c.JSON(reading)
}

// GetAllWeather returns readings for the first stations in the feed
func (h *Handler) GetAllWeather(c *fiber.Ctx) error {
	limit := utils.Clamp(c.QueryInt("limit", h.fetchLimit), 1, maxFetchLimit)

	readings, err := h.dashboardSvc.FetchAll(c.UserContext(), limit)
	if err != nil {
		h.log(c).Error("fetching all weather data", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
	}

	return c.JSON(readings)
}

func (h *Handler) log(c *fiber.Ctx) *slog.Logger {
	if id, ok := c.Locals("requestid").(string); ok {
		return h.logger.With("request_id", id)
	}
	return h.logger
}

// ErrorHandler renders every error as {"error": message}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
