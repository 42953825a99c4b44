package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"weatherdeck/internal/history"
	"weatherdeck/internal/settings"
	"weatherdeck/internal/weather"
)

// State is the presentation state of the session.
type State string

const (
	StateIdle            State = "idle"
	StateSearchPending   State = "search_pending"
	StateResultsShown    State = "results_shown"
	StateForecastPending State = "forecast_pending"
	StateForecastReady   State = "forecast_ready"
	StateForecastFailed  State = "forecast_failed"
)

// Geocoder resolves a free-text query into candidate locations. An empty
// slice covers both "no matches" and any provider failure.
type Geocoder interface {
	SearchLocations(ctx context.Context, query string) []weather.Location
}

// ForecastFetcher retrieves a forecast for a location using the given
// settings values.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, loc weather.Location, prefs map[string]string) (*weather.Forecast, error)
}

// Snapshot is an immutable view of the session handed to subscribers and the
// HTTP layer. The hourly arrays inside Forecast are not pre-trimmed; a view
// that wants "next 24 hours from now" applies that window itself.
type Snapshot struct {
	State    State              `json:"state"`
	Query    string             `json:"query,omitempty"`
	Results  []weather.Location `json:"results,omitempty"`
	Selected *weather.Location  `json:"selected,omitempty"`
	Forecast *weather.Forecast  `json:"forecast,omitempty"`

	Temperature string       `json:"temperature"`
	Apparent    string       `json:"apparent"`
	WindSpeed   string       `json:"wind_speed"`
	DailyHigh   string       `json:"daily_high"`
	DailyLow    string       `json:"daily_low"`
	Icon        weather.Icon `json:"icon"`
	LocalTime   string       `json:"local_time,omitempty"`
}

// Session drives the search -> select -> fetch -> display pipeline. All state
// mutation is serialized by one mutex; network calls run in goroutines and
// re-enter through token-checked completion methods, so a result that arrives
// for a superseded search or selection is discarded instead of applied.
type Session struct {
	geocoder     Geocoder
	forecasts    ForecastFetcher
	settings     *settings.Store
	history      *history.Store
	fetchTimeout time.Duration

	mu          sync.Mutex
	state       State
	query       string
	results     []weather.Location
	selected    *weather.Location
	forecast    *weather.Forecast
	searchToken uuid.UUID
	fetchToken  uuid.UUID
	listeners   []func(Snapshot)

	clockZone *time.Location
	localTime string

	clock *clock
	now   func() time.Time
}

// New assembles a Session. The stores must already be loaded.
func New(geocoder Geocoder, forecasts ForecastFetcher, st *settings.Store, hist *history.Store, fetchTimeout time.Duration) *Session {
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}
	s := &Session{
		geocoder:     geocoder,
		forecasts:    forecasts,
		settings:     st,
		history:      hist,
		fetchTimeout: fetchTimeout,
		state:        StateIdle,
		now:          time.Now,
	}
	s.clock = newClock(s.tick)
	return s
}

// Start begins the clock cadence and restores the most recently viewed
// location, if the history has one.
func (s *Session) Start() {
	s.clock.start()

	if loc, ok := s.history.Latest(); ok {
		log.Printf("session: restoring last viewed location %s", loc.Label())
		s.selectLocation(loc, false)
	}
}

// Stop halts the clock. In-flight fetches finish but their results are
// discarded once their token no longer matches.
func (s *Session) Stop() {
	s.clock.stop()
}

// Subscribe registers a listener invoked with a fresh Snapshot after every
// state change. Listeners are called outside the session lock.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// SubmitQuery starts an asynchronous location search. A newer query
// supersedes an older one still in flight.
func (s *Session) SubmitQuery(query string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
		defer cancel()
		s.Search(ctx, query)
	}()
}

// Search runs a location search on the calling goroutine and returns the
// candidates it produced. The session state is updated the same way as with
// SubmitQuery; if another search was submitted in the meantime this one's
// results are not applied to the session, but they are still returned to the
// caller that asked for them.
func (s *Session) Search(ctx context.Context, query string) []weather.Location {
	s.mu.Lock()
	s.state = StateSearchPending
	s.query = query
	s.results = nil
	token := uuid.New()
	s.searchToken = token
	s.mu.Unlock()
	s.notify()

	results := s.geocoder.SearchLocations(ctx, query)
	s.searchDone(token, results)
	return results
}

func (s *Session) searchDone(token uuid.UUID, results []weather.Location) {
	s.mu.Lock()
	if token != s.searchToken {
		s.mu.Unlock()
		log.Printf("session: discarding results of superseded search")
		return
	}
	// An empty result list is still a valid ResultsShown; the view renders
	// it as "no results".
	s.state = StateResultsShown
	s.results = results
	s.mu.Unlock()
	s.notify()
}

// Select confirms the candidate at the given index of the current result
// list. This is the only path that records a history entry.
func (s *Session) Select(index int) error {
	s.mu.Lock()
	if s.state != StateResultsShown {
		s.mu.Unlock()
		return fmt.Errorf("no search results to select from")
	}
	if index < 0 || index >= len(s.results) {
		s.mu.Unlock()
		return fmt.Errorf("result index %d out of range", index)
	}
	loc := s.results[index]
	s.mu.Unlock()

	s.selectLocation(loc, true)
	return nil
}

// SelectLocation confirms a location directly, e.g. one picked from the
// recent-search list.
func (s *Session) SelectLocation(loc weather.Location) {
	s.selectLocation(loc, true)
}

func (s *Session) selectLocation(loc weather.Location, record bool) {
	if record {
		s.history.Add(loc)
	}

	s.mu.Lock()
	s.selected = &loc
	s.startFetchLocked(loc)
	s.mu.Unlock()
	s.notify()
}

// UpdateSetting applies a settings change. When a location is selected the
// forecast is re-fetched with the new values; the fresh token makes any
// response still in flight for the old settings stale on arrival.
func (s *Session) UpdateSetting(key, value string) error {
	if err := s.settings.Update(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	if s.selected == nil {
		s.mu.Unlock()
		return nil
	}
	loc := *s.selected
	s.startFetchLocked(loc)
	s.mu.Unlock()
	s.notify()
	return nil
}

// startFetchLocked enters ForecastPending and launches the fetch goroutine.
// Caller must hold s.mu.
func (s *Session) startFetchLocked(loc weather.Location) {
	s.state = StateForecastPending
	token := uuid.New()
	s.fetchToken = token
	prefs := s.settings.Values()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
		defer cancel()

		fc, err := s.forecasts.FetchForecast(ctx, loc, prefs)
		s.forecastDone(token, loc, fc, err)
	}()
}

func (s *Session) forecastDone(token uuid.UUID, loc weather.Location, fc *weather.Forecast, err error) {
	s.mu.Lock()
	if token != s.fetchToken {
		s.mu.Unlock()
		log.Printf("session: discarding stale forecast response for %s", loc.Label())
		return
	}

	if err != nil {
		log.Printf("session: forecast fetch failed for %s: %v", loc.Label(), err)
		s.state = StateForecastFailed
		s.forecast = nil
		s.stopLocationClockLocked()
	} else {
		s.state = StateForecastReady
		s.forecast = fc
		s.armLocationClockLocked(fc.Timezone)
	}
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns the current displayable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:       s.state,
		Query:       s.query,
		Selected:    s.selected,
		Forecast:    s.forecast,
		Temperature: s.forecast.FormattedTemperature(),
		Apparent:    s.forecast.FormattedApparent(),
		WindSpeed:   s.forecast.FormattedWindSpeed(),
		DailyHigh:   s.forecast.FormattedDailyHigh(),
		DailyLow:    s.forecast.FormattedDailyLow(),
		Icon:        s.forecast.CurrentIcon(),
		LocalTime:   s.localTime,
	}
	if len(s.results) > 0 {
		snap.Results = make([]weather.Location, len(s.results))
		copy(snap.Results, s.results)
	}
	return snap
}

// notify delivers a fresh snapshot to all listeners, outside the lock.
func (s *Session) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
