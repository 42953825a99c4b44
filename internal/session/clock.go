package session

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// timeFormat renders "3:04 PM", the format the location clock displays.
const timeFormat = "3:04 PM"

// invalidTimezone is shown when the provider reports a timezone the runtime
// cannot resolve.
const invalidTimezone = "Invalid Timezone"

// clock drives the once-per-second tick. The scheduler always runs; whether a
// tick does anything is decided by the session's armed timezone, so switching
// locations never has to tear the job down.
type clock struct {
	scheduler *gocron.Scheduler
	tick      func()
}

func newClock(tick func()) *clock {
	return &clock{
		scheduler: gocron.NewScheduler(time.UTC),
		tick:      tick,
	}
}

func (c *clock) start() {
	if _, err := c.scheduler.Every(1).Seconds().Do(c.tick); err != nil {
		log.Printf("session: scheduling clock tick: %v", err)
		return
	}
	c.scheduler.StartAsync()
}

func (c *clock) stop() {
	c.scheduler.Stop()
}

// armLocationClockLocked resolves the forecast's timezone and primes the
// local-time display. An empty timezone leaves the clock stopped; an
// unresolvable one shows a placeholder instead of failing the forecast.
// Caller must hold s.mu.
func (s *Session) armLocationClockLocked(timezone string) {
	if timezone == "" {
		s.stopLocationClockLocked()
		return
	}

	zone, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("session: could not parse timezone %q: %v", timezone, err)
		s.clockZone = nil
		s.localTime = invalidTimezone
		return
	}

	s.clockZone = zone
	s.localTime = s.now().In(zone).Format(timeFormat)
}

// stopLocationClockLocked disarms the clock and clears the time display.
// Caller must hold s.mu.
func (s *Session) stopLocationClockLocked() {
	s.clockZone = nil
	s.localTime = ""
}

// tick recomputes the local time at the selected location. It runs on the
// clock cadence and is a no-op while no timezone is armed.
func (s *Session) tick() {
	s.mu.Lock()
	if s.clockZone == nil {
		s.mu.Unlock()
		return
	}
	s.localTime = s.now().In(s.clockZone).Format(timeFormat)
	s.mu.Unlock()
	s.notify()
}
