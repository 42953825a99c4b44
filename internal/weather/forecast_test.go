package weather_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdeck/internal/weather"
)

// forecastBody mirrors a real Open-Meteo response, including fields the model
// does not know about (generationtime_ms, pressure_msl, precipitation_sum).
const forecastBody = `{
	"latitude": 52.52,
	"longitude": 13.41,
	"generationtime_ms": 0.2510547637939453,
	"utc_offset_seconds": 7200,
	"timezone": "Europe/Berlin",
	"timezone_abbreviation": "CEST",
	"elevation": 38.0,
	"current_units": {
		"time": "iso8601",
		"temperature_2m": "°C",
		"windspeed_10m": "km/h",
		"rain": "mm",
		"showers": "mm"
	},
	"current": {
		"time": "2026-09-01T10:15",
		"interval": 900,
		"temperature_2m": 15.2,
		"apparent_temperature": 14.1,
		"relative_humidity_2m": 71,
		"is_day": 1,
		"weathercode": 61,
		"windspeed_10m": 12.34,
		"rain": 0.2,
		"showers": 0.1,
		"pressure_msl": 1012.2
	},
	"hourly": {
		"time": ["2026-09-01T00:00", "2026-09-01T01:00", "2026-09-01T02:00"],
		"temperature_2m": [13.1, 12.8, 12.5],
		"relative_humidity_2m": [80, 82, 83],
		"precipitation_probability": [10, 20, 35],
		"weather_code": [2, 3, 61],
		"wind_speed_10m": [10.1, 11.4, 9.8],
		"wind_direction_10m": [180, 190, 200],
		"uv_index": [0.0, 0.0, 0.1],
		"is_day": [0, 0, 0]
	},
	"daily": {
		"time": ["2026-09-01", "2026-09-02"],
		"weather_code": [61, 3],
		"temperature_2m_max": [18.6, 20.2],
		"temperature_2m_min": [11.4, 12.9],
		"sunrise": ["2026-09-01T06:24", "2026-09-02T06:26"],
		"sunset": ["2026-09-01T19:52", "2026-09-02T19:50"],
		"precipitation_sum": [1.2, 0.0]
	}
}`

func decodeForecast(t *testing.T) *weather.Forecast {
	t.Helper()
	var fc weather.Forecast
	require.NoError(t, json.Unmarshal([]byte(forecastBody), &fc))
	return &fc
}

func TestForecast_DecodeTolerant(t *testing.T) {
	fc := decodeForecast(t)

	assert.Equal(t, 52.52, fc.Latitude)
	assert.Equal(t, 13.41, fc.Longitude)
	assert.Equal(t, "Europe/Berlin", fc.Timezone)

	require.NotNil(t, fc.Current)
	assert.Equal(t, 15.2, fc.Current.Temperature)
	assert.Equal(t, 61, fc.Current.WeatherCode)
	assert.Equal(t, 1, fc.Current.IsDay)

	require.NotNil(t, fc.CurrentUnits)
	assert.Equal(t, "°C", fc.CurrentUnits.Temperature)
	assert.Equal(t, "km/h", fc.CurrentUnits.WindSpeed)
}

func TestForecast_HourlyArraysStayAligned(t *testing.T) {
	fc := decodeForecast(t)
	require.NotNil(t, fc.Hourly)

	n := len(fc.Hourly.Time)
	assert.Len(t, fc.Hourly.Temperature, n)
	assert.Len(t, fc.Hourly.RelativeHumidity, n)
	assert.Len(t, fc.Hourly.PrecipitationProbability, n)
	assert.Len(t, fc.Hourly.WeatherCode, n)
	assert.Len(t, fc.Hourly.WindSpeed, n)
	assert.Len(t, fc.Hourly.UVIndex, n)
	assert.Len(t, fc.Hourly.IsDay, n)
}

func TestForecast_MissingBlocksDecodeAsAbsent(t *testing.T) {
	var fc weather.Forecast
	require.NoError(t, json.Unmarshal([]byte(`{"latitude": 1.5, "longitude": 2.5, "timezone": "UTC"}`), &fc))

	assert.Nil(t, fc.Current)
	assert.Nil(t, fc.CurrentUnits)
	assert.Nil(t, fc.Hourly)
	assert.Nil(t, fc.Daily)
}

func TestForecast_FormattedTemperature(t *testing.T) {
	fc := decodeForecast(t)
	assert.Equal(t, "15°C", fc.FormattedTemperature())
}

func TestForecast_FormattedTemperature_RoundsToNearest(t *testing.T) {
	fc := decodeForecast(t)
	fc.Current.Temperature = 15.6
	assert.Equal(t, "16°C", fc.FormattedTemperature())

	fc.Current.Temperature = -0.4
	assert.Equal(t, "0°C", fc.FormattedTemperature())
}

func TestForecast_FormattedWindSpeed(t *testing.T) {
	fc := decodeForecast(t)
	assert.Equal(t, "12.3 km/h", fc.FormattedWindSpeed())
}

func TestForecast_FormattedDailyHighLow(t *testing.T) {
	fc := decodeForecast(t)
	assert.Equal(t, "19°C", fc.FormattedDailyHigh())
	assert.Equal(t, "11°C", fc.FormattedDailyLow())
}

func TestForecast_FormattedPrecipitation(t *testing.T) {
	fc := decodeForecast(t)
	assert.Equal(t, "0.3 mm", fc.FormattedPrecipitation())
}

func TestForecast_PlaceholdersWhenDataAbsent(t *testing.T) {
	var nilFc *weather.Forecast
	assert.Equal(t, "-", nilFc.FormattedTemperature())

	empty := &weather.Forecast{}
	assert.Equal(t, "-", empty.FormattedTemperature())
	assert.Equal(t, "-", empty.FormattedApparent())
	assert.Equal(t, "-", empty.FormattedWindSpeed())
	assert.Equal(t, "-", empty.FormattedHumidity())
	assert.Equal(t, "-", empty.FormattedPrecipitation())
	assert.Equal(t, "-", empty.FormattedDailyHigh())
	assert.Equal(t, "-", empty.FormattedDailyLow())
	assert.Equal(t, weather.IconUnknown, empty.CurrentIcon())

	// A daily block with empty arrays is also "no data".
	empty.Daily = &weather.Daily{}
	assert.Equal(t, "-", empty.FormattedDailyHigh())
	assert.Equal(t, "-", empty.FormattedDailyLow())
}

func TestForecast_UnitStringsComeFromResponse(t *testing.T) {
	fc := decodeForecast(t)
	fc.CurrentUnits.Temperature = "°F"
	fc.Current.Temperature = 59.4
	assert.Equal(t, "59°F", fc.FormattedTemperature())

	// No units block: the number still renders, without a suffix.
	fc.CurrentUnits = nil
	assert.Equal(t, "59", fc.FormattedTemperature())
}
