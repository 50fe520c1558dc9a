package ports

import (
	"context"
	"fmt"
	"strings"
)

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances from one origin to many destinations. When only some
	// destinations are unroutable the reachable ones are returned together
	// with an *UnroutableError naming the others.
	GetDistances(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
}

// UnroutableError lists the destinations of a batched lookup that have no
// driving route from Origin. It matches ErrNoRoute with errors.Is.
type UnroutableError struct {
	Origin       string
	Destinations []string
}

func (e *UnroutableError) Error() string {
	return fmt.Sprintf("no driving route from %q to %s", e.Origin, strings.Join(e.Destinations, ", "))
}

func (e *UnroutableError) Unwrap() error { return ErrNoRoute }
