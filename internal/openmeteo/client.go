package openmeteo

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Default endpoints for the two Open-Meteo APIs. Neither requires an API key
// for non-commercial use.
const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// Client talks to the Open-Meteo geocoding and forecast APIs. A single client
// shares one HTTP client, one rate limiter and one circuit breaker across
// both endpoints.
type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
	limiter      *rate.Limiter
	circuit      *gobreaker.CircuitBreaker
	backoff      BackoffConfig
}

// NewClient creates a Client against the given endpoints. rps bounds outbound
// requests per second (fractional values allowed); pass the default URL
// constants for production use or httptest server URLs in tests.
func NewClient(httpClient *http.Client, geocodingURL, forecastURL string, rps float64) *Client {
	if rps <= 0 {
		rps = 2
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient:   httpClient,
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
		limiter:      rate.NewLimiter(rate.Limit(rps), 4),
		circuit:      cb,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
	}
}
