package domain

import "time"

// TripEntry is one technician's day: where they went in the morning,
// where they finished in the evening, and the resulting compensation.
// Entries are immutable once recorded.
type TripEntry struct {
	Date              time.Time
	Technician        string
	MorningProject    string
	EveningProject    string
	MorningAddress    string
	EveningAddress    string
	MorningDistanceKm *float64
	EveningDistanceKm *float64
	CompensatedKm     float64
}

// NewTripEntry builds an entry from the two resolved legs.
// Distances that could not be looked up are recorded as absent.
func NewTripEntry(
	date time.Time,
	technician string,
	morningProject string,
	morningAddress string,
	eveningProject string,
	eveningAddress string,
	morning Leg,
	evening Leg,
) TripEntry {
	return TripEntry{
		Date:              DateOf(date),
		Technician:        technician,
		MorningProject:    morningProject,
		EveningProject:    eveningProject,
		MorningAddress:    morningAddress,
		EveningAddress:    eveningAddress,
		MorningDistanceKm: morning.Ptr(),
		EveningDistanceKm: evening.Ptr(),
		CompensatedKm:     CompensatedKm(morning, evening),
	}
}

// EntryKey identifies a row of the weekly form. Committing twice under the
// same key replaces the earlier entry instead of adding a duplicate.
type EntryKey struct {
	Date       string
	Technician string
	Row        int
}

// Key derives the commit key of an entry for the given form row.
func (e TripEntry) Key(row int) EntryKey {
	return EntryKey{
		Date:       e.Date.Format(time.DateOnly),
		Technician: e.Technician,
		Row:        row,
	}
}
