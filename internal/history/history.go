package history

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"weatherdeck/internal/weather"
)

// maxEntries bounds how many recent searches are kept.
const maxEntries = 10

// formatVersion tags the on-disk envelope so the layout can evolve without
// silently misreading old files.
const formatVersion = 1

// Entry records one confirmed location selection.
type Entry struct {
	Location   weather.Location `json:"location"`
	SearchedAt time.Time        `json:"searched_at"`
}

type envelope struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Store is the persisted recent-search list, most recent first. Entries are
// de-duplicated by the location's canonical String form; the whole list is
// rewritten on every mutation.
type Store struct {
	path string

	mu      sync.Mutex
	entries []Entry

	now func() time.Time
}

// NewStore creates a Store bound to the given file path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// Load reads the persisted list. A missing, unreadable or unrecognized file
// yields an empty history, never an error.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("history: reading %s: %v", s.path, err)
		}
		s.entries = nil
		return
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("history: %s is not a valid history file, starting empty: %v", s.path, err)
		s.entries = nil
		return
	}
	if env.Version != formatVersion {
		log.Printf("history: %s has unsupported version %d, starting empty", s.path, env.Version)
		s.entries = nil
		return
	}

	if len(env.Entries) > maxEntries {
		env.Entries = env.Entries[:maxEntries]
	}
	s.entries = env.Entries
}

// Add records a confirmed selection. Any existing entry for the same place is
// removed first, so re-selecting a location moves it to the front with a
// fresh timestamp. The list is truncated to capacity and persisted wholesale.
func (s *Store) Add(loc weather.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := loc.String()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Location.String() != key {
			kept = append(kept, e)
		}
	}

	s.entries = append([]Entry{{Location: loc, SearchedAt: s.now()}}, kept...)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}

	s.save()
}

// Entries returns a copy of the list, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Latest returns the most recently selected location, if any. It works before
// any Add in the current run, which is what lets startup restore the last
// viewed location.
func (s *Store) Latest() (weather.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return weather.Location{}, false
	}
	return s.entries[0].Location, true
}

// save writes the full list. Persistence failures are logged, not fatal: the
// in-memory list stays authoritative for the rest of the run. Caller must
// hold s.mu.
func (s *Store) save() {
	env := envelope{Version: formatVersion, Entries: s.entries}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		log.Printf("history: encoding entries: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("history: writing %s: %v", s.path, err)
	}
}
