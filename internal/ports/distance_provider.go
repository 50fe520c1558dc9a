package ports

import (
	"context"
	"errors"
)

// ErrNoRoute is returned when the distance service answers but has no
// driving route between the two addresses.
var ErrNoRoute = errors.New("no driving route")

// Driving distance and travel duration between two addresses.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving driving distance between addresses.
type DistanceProvider interface {
	// Return driving distance and estimated duration from origin to destination.
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}
