package domain

// WeeklyResultSet is the ordered list of trip entries recorded during one
// session. It grows by Append or Commit and is only ever emptied by Clear.
//
// A WeeklyResultSet is not safe for concurrent use; the session owning it
// serializes access.
type WeeklyResultSet struct {
	entries []TripEntry
	keys    []*EntryKey
}

func NewWeeklyResultSet() *WeeklyResultSet {
	return &WeeklyResultSet{}
}

// Append adds an entry at the end. There is no deduplication: the same
// technician and day may appear several times.
func (s *WeeklyResultSet) Append(e TripEntry) {
	s.entries = append(s.entries, e)
	s.keys = append(s.keys, nil)
}

// Commit records an entry under a form-row key. A second commit with the
// same key overwrites the first in place, keeping its position.
// It reports whether an existing entry was replaced.
func (s *WeeklyResultSet) Commit(key EntryKey, e TripEntry) bool {
	for i, k := range s.keys {
		if k != nil && *k == key {
			s.entries[i] = e
			return true
		}
	}

	s.entries = append(s.entries, e)
	s.keys = append(s.keys, &key)
	return false
}

// Clear removes every entry.
func (s *WeeklyResultSet) Clear() {
	s.entries = nil
	s.keys = nil
}

// All returns the entries in insertion order. The slice is a copy.
func (s *WeeklyResultSet) All() []TripEntry {
	out := make([]TripEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *WeeklyResultSet) Len() int { return len(s.entries) }

// TotalCompensatedKm sums the compensation of every entry.
func (s *WeeklyResultSet) TotalCompensatedKm() float64 {
	values := make([]float64, 0, len(s.entries))
	for _, e := range s.entries {
		values = append(values, e.CompensatedKm)
	}
	return SumKm(values...)
}
