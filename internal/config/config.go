package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"weatherdeck/internal/openmeteo"
)

// AppConfig holds everything the process needs to run.
type AppConfig struct {
	// DataDir is where the settings and recent-search files live.
	DataDir string

	// Open-Meteo endpoints; overridable for tests and proxies.
	GeocodingURL string
	ForecastURL  string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// OutboundRPS caps requests per second against the provider.
	OutboundRPS float64

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DataDir = getenvDefault("WEATHERDECK_DATA_DIR", ".")
	cfg.GeocodingURL = getenvDefault("GEOCODING_BASE_URL", openmeteo.DefaultGeocodingURL)
	cfg.ForecastURL = getenvDefault("FORECAST_BASE_URL", openmeteo.DefaultForecastURL)

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.OutboundRPS = getenvFloat("OUTBOUND_RPS", 2)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// SettingsPath is the location of the persisted settings file.
func (c *AppConfig) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.properties")
}

// HistoryPath is the location of the persisted recent-search file.
func (c *AppConfig) HistoryPath() string {
	return filepath.Join(c.DataDir, "recent_searches.json")
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
