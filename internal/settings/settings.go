package settings

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Recognized setting keys. The persisted file may carry additional keys from
// older versions (e.g. forecast_interval); those are kept verbatim on re-save
// but are not validated or interpreted.
const (
	KeyTemperatureUnit   = "temperature_unit"
	KeyWindSpeedUnit     = "wind_speed_unit"
	KeyPrecipitationUnit = "precipitation_unit"
	KeyForecastDays      = "forecast_days"
)

// unitConstraints maps each unit key to its validator rule. These are the
// only values the forecast API accepts.
var unitConstraints = map[string]string{
	KeyTemperatureUnit:   "oneof=celsius fahrenheit",
	KeyWindSpeedUnit:     "oneof=kmh ms mph kn",
	KeyPrecipitationUnit: "oneof=mm inch",
}

var validate = validator.New()

// Defaults returns the settings written on first run.
func Defaults() map[string]string {
	return map[string]string{
		KeyTemperatureUnit:   "celsius",
		KeyWindSpeedUnit:     "kmh",
		KeyPrecipitationUnit: "mm",
		KeyForecastDays:      "7",
	}
}

// Store holds user preferences backed by a key=value file. The in-memory map
// is authoritative for the lifetime of the process; every update rewrites the
// whole file.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// NewStore creates a Store bound to the given file path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		values: Defaults(),
	}
}

// Load reads the settings file. A missing or unreadable file is not an error:
// the defaults are installed and persisted so the next run finds a file.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := godotenv.Read(s.path)
	if err != nil {
		log.Printf("settings: no readable settings file at %s, creating defaults: %v", s.path, err)
		s.values = Defaults()
		s.save()
		return
	}

	// Fill in any recognized key the file is missing; keep everything else.
	for k, v := range Defaults() {
		if _, ok := values[k]; !ok {
			values[k] = v
		}
	}
	s.values = values
	log.Printf("settings: configuration loaded from %s", s.path)
}

// Get returns the current value for a key, or "" for an unknown key.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Values returns a copy of all settings, suitable for building API requests.
func (s *Store) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Update validates and applies a single setting, then persists the full set.
// A persistence failure is logged, not returned: the in-memory value stays
// authoritative for the rest of the run.
func (s *Store) Update(key, value string) error {
	if err := validateSetting(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.save()
	return nil
}

func validateSetting(key, value string) error {
	if rule, ok := unitConstraints[key]; ok {
		if err := validate.Var(value, rule); err != nil {
			return fmt.Errorf("invalid value %q for %s", value, key)
		}
		return nil
	}

	if key == KeyForecastDays {
		days, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s", value, key)
		}
		if err := validate.Var(days, "min=1,max=16"); err != nil {
			return fmt.Errorf("%s must be between 1 and 16", key)
		}
		return nil
	}

	return fmt.Errorf("unrecognized setting %q", key)
}

// save writes the full map. Caller must hold s.mu.
func (s *Store) save() {
	if err := godotenv.Write(s.values, s.path); err != nil {
		log.Printf("settings: saving configuration to %s: %v", s.path, err)
		return
	}
	log.Printf("settings: configuration saved to %s", s.path)
}
