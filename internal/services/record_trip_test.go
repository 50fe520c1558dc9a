package services

import (
	"commute-compensation-service/internal/adapters/distance"
	"commute-compensation-service/internal/adapters/repositories"
	"commute-compensation-service/internal/domain"
	"context"
	"errors"
	"testing"
	"time"
)

func testDirectory(t *testing.T) *repositories.JSONDirectory {
	t.Helper()

	dir, err := repositories.NewJSONDirectory(
		[]domain.Technician{
			{Name: "Alice", HomeAddress: "HOME"},
			{Name: "Bob", HomeAddress: "BOB_HOME"},
		},
		[]domain.Project{
			{Name: "Far", Address: "A"},
			{Name: "Near", Address: "B"},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dir
}

func TestRecordTrip(t *testing.T) {
	provider := distance.NewStaticDistanceProvider([]distance.StaticPair{
		{From: "HOME", To: "A", Meters: 50000, Seconds: 2400},
		{From: "B", To: "HOME", Meters: 30000, Seconds: 1500},
	})

	date := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)
	entry, err := RecordTrip(context.Background(), testDirectory(t), provider, TripRequest{
		Date:           date,
		Technician:     "Alice",
		MorningProject: "Far",
		EveningProject: "Near",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.CompensatedKm != 10 {
		t.Fatalf("expected 10 km to compensate, got %v", entry.CompensatedKm)
	}
	if entry.MorningDistanceKm == nil || *entry.MorningDistanceKm != 50 {
		t.Fatalf("expected morning distance 50, got %v", entry.MorningDistanceKm)
	}
	if entry.EveningDistanceKm == nil || *entry.EveningDistanceKm != 30 {
		t.Fatalf("expected evening distance 30, got %v", entry.EveningDistanceKm)
	}
	if entry.MorningAddress != "A" || entry.EveningAddress != "B" {
		t.Fatalf("unexpected addresses: %q %q", entry.MorningAddress, entry.EveningAddress)
	}
	if got := entry.Date.Format(time.DateOnly); got != "2024-03-04" {
		t.Fatalf("expected date 2024-03-04, got %s", got)
	}

	calls := provider.Calls()
	if len(calls) != 2 || calls[0] != "HOME|A" || calls[1] != "B|HOME" {
		t.Fatalf("expected home->morning then evening->home, got %v", calls)
	}
}

func TestRecordTripBothLegsFail(t *testing.T) {
	provider := distance.NewStaticDistanceProvider(nil)

	entry, err := RecordTrip(context.Background(), testDirectory(t), provider, TripRequest{
		Date:           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Technician:     "Alice",
		MorningProject: "Far",
		EveningProject: "Far",
	})
	if err != nil {
		t.Fatalf("distance failures must not fail the trip: %v", err)
	}

	if entry.MorningDistanceKm != nil || entry.EveningDistanceKm != nil {
		t.Fatalf("expected absent distances, got %v / %v", entry.MorningDistanceKm, entry.EveningDistanceKm)
	}
	if entry.CompensatedKm != 0 {
		t.Fatalf("expected 0 km to compensate, got %v", entry.CompensatedKm)
	}
}

func TestRecordTripOneLegFails(t *testing.T) {
	provider := distance.NewStaticDistanceProvider([]distance.StaticPair{
		{From: "HOME", To: "A", Meters: 62345},
		{From: "A", To: "HOME", Meters: 62345},
	})
	provider.Fail("A", "HOME", errors.New("OVER_QUERY_LIMIT"))

	entry, err := RecordTrip(context.Background(), testDirectory(t), provider, TripRequest{
		Date:           time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		Technician:     "Alice",
		MorningProject: "Far",
		EveningProject: "Far",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.EveningDistanceKm != nil {
		t.Fatalf("expected absent evening distance, got %v", *entry.EveningDistanceKm)
	}
	if entry.CompensatedKm != 22.35 {
		t.Fatalf("expected 22.35 km to compensate, got %v", entry.CompensatedKm)
	}
}

func TestRecordTripUnknownNames(t *testing.T) {
	tests := []struct {
		name string
		req  TripRequest
	}{
		{"technician", TripRequest{Technician: "Nobody", MorningProject: "Far", EveningProject: "Near"}},
		{"morning project", TripRequest{Technician: "Alice", MorningProject: "", EveningProject: "Near"}},
		{"evening project", TripRequest{Technician: "Alice", MorningProject: "Far", EveningProject: "Gone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := distance.NewStaticDistanceProvider(nil)

			_, err := RecordTrip(context.Background(), testDirectory(t), provider, tt.req)
			if !errors.Is(err, ErrIncompleteEntry) {
				t.Fatalf("expected ErrIncompleteEntry, got %v", err)
			}
			if n := len(provider.Calls()); n != 0 {
				t.Fatalf("expected no distance lookups, got %d", n)
			}
		})
	}
}

func TestTripRequestKey(t *testing.T) {
	req := TripRequest{
		Date:       time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC),
		Technician: " Alice ",
		Row:        2,
	}

	want := domain.EntryKey{Date: "2024-03-04", Technician: "Alice", Row: 2}
	if got := req.Key(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
