package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdeck/internal/config"
	"weatherdeck/internal/openmeteo"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, openmeteo.DefaultGeocodingURL, cfg.GeocodingURL)
	assert.Equal(t, openmeteo.DefaultForecastURL, cfg.ForecastURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2.0, cfg.OutboundRPS)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WEATHERDECK_DATA_DIR", "/var/lib/weatherdeck")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("OUTBOUND_RPS", "0.5")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0.5, cfg.OutboundRPS)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, filepath.Join("/var/lib/weatherdeck", "settings.properties"), cfg.SettingsPath())
	assert.Equal(t, filepath.Join("/var/lib/weatherdeck", "recent_searches.json"), cfg.HistoryPath())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := config.Load()
	assert.Error(t, err)
}
