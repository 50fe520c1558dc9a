// Package session keeps the per-user state of the weekly form: the recorded
// trips, the selected week and how many technician rows each day shows.
package session

import (
	"commute-compensation-service/internal/domain"
	"sync"
	"time"
)

const (
	MinDayRows     = 1
	MaxDayRows     = 10
	DefaultDayRows = 1
)

// Session is the state of one browser or API client. All methods are safe
// for concurrent use.
type Session struct {
	id string

	mu       sync.Mutex
	results  *domain.WeeklyResultSet
	week     domain.Week
	dayRows  map[string]int
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		id:       id,
		results:  domain.NewWeeklyResultSet(),
		week:     domain.AnchorWeek(now),
		dayRows:  map[string]int{},
		lastSeen: now,
	}
}

func (s *Session) ID() string { return s.id }

// Commit records an entry under its form-row key and reports whether an
// earlier entry for the same key was replaced.
func (s *Session) Commit(key domain.EntryKey, e domain.TripEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Commit(key, e)
}

// Clear empties the result set. The selected week and row counts are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results.Clear()
}

func (s *Session) Entries() []domain.TripEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.All()
}

func (s *Session) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.TotalCompensatedKm()
}

func (s *Session) Week() domain.Week {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.week
}

// SelectWeek anchors the session on the week containing date.
func (s *Session) SelectWeek(date time.Time) domain.Week {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week = domain.AnchorWeek(date)
	return s.week
}

// DayRows returns how many technician rows the form shows for a day.
func (s *Session) DayRows(day string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.dayRows[day]; ok {
		return n
	}
	return DefaultDayRows
}

// SetDayRows stores the row count for a day, clamped to 1..10, and returns
// the stored value.
func (s *Session) SetDayRows(day string, n int) int {
	n = ClampDayRows(n)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayRows[day] = n
	return n
}

func ClampDayRows(n int) int {
	switch {
	case n < MinDayRows:
		return MinDayRows
	case n > MaxDayRows:
		return MaxDayRows
	default:
		return n
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
