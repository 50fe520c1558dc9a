package services

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/platform/obs"
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
)

// DriveDistanceKm looks up the driving distance between two addresses and
// returns it as a Leg in kilometers rounded to two decimals.
//
// It never returns an error: any failure (empty address, network, quota,
// malformed response) yields a failed Leg; the deferred timing line logs it
// at WARN. Exactly one provider call is made per invocation.
func DriveDistanceKm(
	ctx context.Context,
	provider ports.DistanceProvider,
	origin string,
	destination string,
) domain.Leg {
	var err error
	defer obs.Time(ctx, "services.DriveDistanceKm")(&err)

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		err = errors.New("drive distance: origin and destination must be non-empty")
		return domain.LegFailed(err)
	}

	r, err := provider.GetDistance(ctx, origin, destination)
	if err != nil {
		err = fmt.Errorf("drive distance: %q -> %q: %w", origin, destination, err)
		return domain.LegFailed(err)
	}
	if r.DistanceMeters < 0 {
		err = fmt.Errorf("drive distance: %q -> %q: negative distance %d", origin, destination, r.DistanceMeters)
		return domain.LegFailed(err)
	}

	return domain.LegKm(domain.MetersToKm(r.DistanceMeters))
}
