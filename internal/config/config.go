package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hkweather/backend/internal/service"
)

// Config holds the server settings read from the environment
type Config struct {
	Port        string
	Env         string
	LogLevel    slog.Level
	StationsURL string
	HTTPTimeout time.Duration
	FetchLimit  int
	StaticDir   string
	CORSOrigins string
}

// IsProduction reports whether the server runs with GO_ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from environment variables.
// Call godotenv.Load beforehand to pick up a .env file.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	switch env {
	case "development", "production":
	default:
		return nil, fmt.Errorf("invalid GO_ENV %q (allowed: development, production)", env)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	timeoutStr := getEnv("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q", timeoutStr)
	}

	limitStr := getEnv("FETCH_LIMIT", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("invalid FETCH_LIMIT %q", limitStr)
	}

	port := getEnv("PORT", "5001")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
	}

	return &Config{
		Port:        port,
		Env:         env,
		LogLevel:    level,
		StationsURL: getEnv("STATIONS_URL", service.DefaultStationsURL),
		HTTPTimeout: timeout,
		FetchLimit:  limit,
		StaticDir:   getEnv("STATIC_DIR", "frontend/dist"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
