package services

import (
	"commute-compensation-service/internal/adapters/distance"
	"context"
	"testing"
)

func TestDriveDistanceKm(t *testing.T) {
	provider := distance.NewStaticDistanceProvider([]distance.StaticPair{
		{From: "A", To: "B", Meters: 41235},
	})

	leg := DriveDistanceKm(context.Background(), provider, "A", "B")
	km, ok := leg.Km()
	if !ok {
		t.Fatalf("expected a distance, got error %v", leg.Err())
	}
	if km != 41.24 {
		t.Fatalf("expected 41.24 km, got %v", km)
	}
}

func TestDriveDistanceKmFailure(t *testing.T) {
	provider := distance.NewStaticDistanceProvider(nil)

	leg := DriveDistanceKm(context.Background(), provider, "A", "B")
	if _, ok := leg.Km(); ok {
		t.Fatalf("expected unknown distance")
	}
	if leg.Err() == nil {
		t.Fatalf("expected a failure reason")
	}
	if n := len(provider.Calls()); n != 1 {
		t.Fatalf("expected exactly one provider call, got %d", n)
	}
}

func TestDriveDistanceKmEmptyAddress(t *testing.T) {
	provider := distance.NewStaticDistanceProvider(nil)

	leg := DriveDistanceKm(context.Background(), provider, "  ", "B")
	if leg.Err() == nil {
		t.Fatalf("expected a failure for an empty origin")
	}
	if n := len(provider.Calls()); n != 0 {
		t.Fatalf("expected no provider call, got %d", n)
	}
}
