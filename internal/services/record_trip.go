package services

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrIncompleteEntry marks a trip request naming a technician or project the
// directory does not know. Callers skip such rows; it is not a user error.
var ErrIncompleteEntry = errors.New("incomplete entry")

// TripRequest is one row of the weekly form.
type TripRequest struct {
	Date           time.Time
	Technician     string
	MorningProject string
	EveningProject string
	// Row is the position of the technician within the day, starting at 0.
	Row int
}

// Key is the commit key of the entry the request produces.
func (r TripRequest) Key() domain.EntryKey {
	return domain.EntryKey{
		Date:       domain.DateOf(r.Date).Format(time.DateOnly),
		Technician: strings.TrimSpace(r.Technician),
		Row:        r.Row,
	}
}

// RecordTrip resolves the addresses of a trip, looks up both legs and
// builds the resulting entry:
//
//	morning: technician home -> morning project
//	evening: evening project -> technician home
//
// The two lookups run sequentially. Distance failures do not fail the call;
// the corresponding leg is recorded as absent and counts as 0 km.
func RecordTrip(
	ctx context.Context,
	dir ports.Directory,
	provider ports.DistanceProvider,
	req TripRequest,
) (domain.TripEntry, error) {
	tech := strings.TrimSpace(req.Technician)
	morningProject := strings.TrimSpace(req.MorningProject)
	eveningProject := strings.TrimSpace(req.EveningProject)

	home, ok := dir.TechnicianAddress(tech)
	if !ok {
		return domain.TripEntry{}, fmt.Errorf("record trip: unknown technician %q: %w", tech, ErrIncompleteEntry)
	}
	morningAddr, ok := dir.ProjectAddress(morningProject)
	if !ok {
		return domain.TripEntry{}, fmt.Errorf("record trip: unknown morning project %q: %w", morningProject, ErrIncompleteEntry)
	}
	eveningAddr, ok := dir.ProjectAddress(eveningProject)
	if !ok {
		return domain.TripEntry{}, fmt.Errorf("record trip: unknown evening project %q: %w", eveningProject, ErrIncompleteEntry)
	}

	morning := DriveDistanceKm(ctx, provider, home, morningAddr)
	evening := DriveDistanceKm(ctx, provider, eveningAddr, home)

	entry := domain.NewTripEntry(
		req.Date,
		tech,
		morningProject,
		morningAddr,
		eveningProject,
		eveningAddr,
		morning,
		evening,
	)

	slog.InfoContext(ctx, "trip recorded",
		"date", entry.Date.Format(time.DateOnly),
		"technician", tech,
		"compensated_km", entry.CompensatedKm,
	)

	return entry, nil
}
