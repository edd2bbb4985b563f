// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	// CatalogPath points to an optional YAML asset catalog. When empty the
	// built-in catalog is used.
	CatalogPath string

	// Initial synthetic series parameters.
	SeriesPoints    int
	SeriesBasePrice float64

	// Refresh cadences for the two background jobs.
	SeriesRefresh   time.Duration
	RevalueInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("TICKERDECK_PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		CatalogPath:     getEnv("TICKERDECK_CATALOG", ""),
		SeriesPoints:    getEnvAsInt("SERIES_POINTS", 24),
		SeriesBasePrice: getEnvAsFloat("SERIES_BASE_PRICE", 100.0),
		SeriesRefresh:   time.Duration(getEnvAsInt("SERIES_REFRESH_SECONDS", 2)) * time.Second,
		RevalueInterval: time.Duration(getEnvAsInt("REVALUE_INTERVAL_SECONDS", 5)) * time.Second,
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.SeriesPoints <= 0 {
		return nil, fmt.Errorf("series points must be positive, got %d", cfg.SeriesPoints)
	}
	if cfg.SeriesBasePrice < 0 {
		return nil, fmt.Errorf("series base price must be non-negative, got %f", cfg.SeriesBasePrice)
	}
	if cfg.SeriesRefresh < time.Second {
		return nil, fmt.Errorf("series refresh interval must be at least 1s")
	}
	if cfg.RevalueInterval < time.Second {
		return nil, fmt.Errorf("revalue interval must be at least 1s")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsFloat retrieves an environment variable as a float
func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
