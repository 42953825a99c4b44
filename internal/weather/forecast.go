package weather

import (
	"fmt"
	"math"
)

// Placeholder is shown whenever a derived value has no data behind it.
const Placeholder = "-"

// Forecast is the decoded Open-Meteo forecast response. Optional blocks are
// pointers so an absent block decodes to nil rather than failing; unknown
// fields added by the provider are dropped by encoding/json as a matter of
// course. Within each block the arrays are parallel: element i of every array
// belongs to Time[i].
type Forecast struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`

	Current      *Current      `json:"current,omitempty"`
	CurrentUnits *CurrentUnits `json:"current_units,omitempty"`
	Hourly       *Hourly       `json:"hourly,omitempty"`
	Daily        *Daily        `json:"daily,omitempty"`
}

// Current holds the current-conditions block. The API uses the legacy key
// spellings (weathercode, windspeed_10m) for this block, unlike hourly/daily.
type Current struct {
	Time             string  `json:"time"`
	Interval         int     `json:"interval"`
	Temperature      float64 `json:"temperature_2m"`
	Apparent         float64 `json:"apparent_temperature"`
	RelativeHumidity int     `json:"relative_humidity_2m"`
	Rain             float64 `json:"rain"`
	Showers          float64 `json:"showers"`
	WeatherCode      int     `json:"weathercode"`
	WindSpeed        float64 `json:"windspeed_10m"`
	IsDay            int     `json:"is_day"`
}

// CurrentUnits carries the unit strings the provider reports alongside the
// current block, e.g. "°C" or "km/h". Display formatting uses these verbatim.
type CurrentUnits struct {
	Temperature string `json:"temperature_2m"`
	WindSpeed   string `json:"windspeed_10m"`
	Rain        string `json:"rain"`
	Showers     string `json:"showers"`
}

// Hourly holds the hour-indexed parallel arrays.
type Hourly struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	RelativeHumidity         []int     `json:"relative_humidity_2m"`
	PrecipitationProbability []int     `json:"precipitation_probability"`
	WeatherCode              []int     `json:"weather_code"`
	WindSpeed                []float64 `json:"wind_speed_10m"`
	WindDirection            []int     `json:"wind_direction_10m"`
	UVIndex                  []float64 `json:"uv_index"`
	IsDay                    []int     `json:"is_day"`
}

// Daily holds the date-indexed parallel arrays.
type Daily struct {
	Time           []string  `json:"time"`
	WeatherCode    []int     `json:"weather_code"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	Sunrise        []string  `json:"sunrise"`
	Sunset         []string  `json:"sunset"`
}

func (f *Forecast) temperatureUnit() string {
	if f.CurrentUnits == nil {
		return ""
	}
	return f.CurrentUnits.Temperature
}

// FormattedTemperature renders the current temperature rounded to the nearest
// whole degree with the reported unit, e.g. "15°C".
func (f *Forecast) FormattedTemperature() string {
	if f == nil || f.Current == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d%s", int(math.Round(f.Current.Temperature)), f.temperatureUnit())
}

// FormattedApparent renders the current "feels like" temperature.
func (f *Forecast) FormattedApparent() string {
	if f == nil || f.Current == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d%s", int(math.Round(f.Current.Apparent)), f.temperatureUnit())
}

// FormattedWindSpeed renders the current wind speed to one decimal place with
// the reported unit, e.g. "12.5 km/h".
func (f *Forecast) FormattedWindSpeed() string {
	if f == nil || f.Current == nil {
		return Placeholder
	}
	unit := ""
	if f.CurrentUnits != nil {
		unit = f.CurrentUnits.WindSpeed
	}
	return fmt.Sprintf("%.1f %s", f.Current.WindSpeed, unit)
}

// FormattedHumidity renders the current relative humidity as a percentage.
func (f *Forecast) FormattedHumidity() string {
	if f == nil || f.Current == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d%%", f.Current.RelativeHumidity)
}

// FormattedPrecipitation renders the combined current rain and shower rate
// with the reported rain unit.
func (f *Forecast) FormattedPrecipitation() string {
	if f == nil || f.Current == nil {
		return Placeholder
	}
	unit := ""
	if f.CurrentUnits != nil {
		unit = f.CurrentUnits.Rain
	}
	return fmt.Sprintf("%.1f %s", f.Current.Rain+f.Current.Showers, unit)
}

// FormattedDailyHigh renders today's maximum temperature, taken from the
// first element of the daily block.
func (f *Forecast) FormattedDailyHigh() string {
	if f == nil || f.Daily == nil || len(f.Daily.TemperatureMax) == 0 {
		return Placeholder
	}
	return fmt.Sprintf("%d%s", int(math.Round(f.Daily.TemperatureMax[0])), f.temperatureUnit())
}

// FormattedDailyLow renders today's minimum temperature.
func (f *Forecast) FormattedDailyLow() string {
	if f == nil || f.Daily == nil || len(f.Daily.TemperatureMin) == 0 {
		return Placeholder
	}
	return fmt.Sprintf("%d%s", int(math.Round(f.Daily.TemperatureMin[0])), f.temperatureUnit())
}

// CurrentIcon maps the current weather code to its icon, or IconUnknown when
// there is no current block.
func (f *Forecast) CurrentIcon() Icon {
	if f == nil || f.Current == nil {
		return IconUnknown
	}
	return IconForCode(f.Current.WeatherCode)
}
