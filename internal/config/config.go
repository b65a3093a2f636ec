package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Open-Meteo upstream configuration. The URLs are overridable so tests
	// and proxies can redirect traffic; defaults point at the public APIs.
	GeocodingURL    string
	ForecastURL     string
	UpstreamTimeout time.Duration

	// HS256 secret gating admin-permission tool invocations. Empty means
	// admin tools cannot be invoked at all.
	AuthSecret string
}

// Load reads configuration from the environment, applying defaults where
// unset. A local .env file is loaded first if present.
func Load() (*Config, error) {
	godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	upstreamTimeout, err := parseDuration("OPENMETEO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		GeocodingURL:    envOrDefault("OPENMETEO_GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ForecastURL:     envOrDefault("OPENMETEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		UpstreamTimeout: upstreamTimeout,
		AuthSecret:      os.Getenv("TOOL_AUTH_SECRET"),
	}, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}
