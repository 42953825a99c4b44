package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"weatherdeck/internal/weather"
)

// Field-selection lists for the forecast request. The current block uses the
// API's legacy variable spellings; hourly and daily use the current ones.
const (
	currentFields      = "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,weathercode,windspeed_10m,rain,showers"
	currentUnitsFields = "temperature_2m,windspeed_10m,rain,showers"
	hourlyFields       = "temperature_2m,relative_humidity_2m,is_day,weather_code,wind_speed_10m,wind_direction_10m,precipitation_probability,uv_index"
	dailyFields        = "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset"
)

// FetchForecast retrieves the forecast for a location. The unit and day-count
// parameters are read from prefs at call time, so a settings change followed
// by a re-fetch changes the outgoing request. A non-nil error covers every
// failure mode (transport, status, decode); callers only need the
// success/failure distinction.
func (c *Client) FetchForecast(ctx context.Context, loc weather.Location, prefs map[string]string) (*weather.Forecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
		values.Set("current", currentFields)
		values.Set("current_units", currentUnitsFields)
		values.Set("hourly", hourlyFields)
		values.Set("daily", dailyFields)
		values.Set("timezone", "auto")
		values.Set("temperature_unit", prefs["temperature_unit"])
		values.Set("wind_speed_unit", prefs["wind_speed_unit"])
		values.Set("precipitation_unit", prefs["precipitation_unit"])
		values.Set("forecast_days", prefs["forecast_days"])

		u := fmt.Sprintf("%s?%s", c.forecastURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.doResilientRequest(ctx, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("forecast fetch for %s: %w", loc.Label(), err)
	}
	defer resp.Body.Close()

	var fc weather.Forecast
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding forecast for %s: %w", loc.Label(), err)
	}

	return &fc, nil
}
