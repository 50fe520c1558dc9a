package distance

import (
	"commute-compensation-service/internal/platform/obs"
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"googlemaps.github.io/maps"
)

// GoogleOptions tunes the Google provider. Zero values select defaults.
type GoogleOptions struct {
	BaseURL       string
	MaxAttempts   int
	Client        *http.Client
	DistanceCache ports.DistanceCache
}

// GoogleDistanceProvider implements DistanceProvider with the Google Maps
// Distance Matrix API in driving mode. Addresses are sent as free text; no
// separate geocoding step is needed.
type GoogleDistanceProvider struct {
	client        *maps.Client
	distanceCache ports.DistanceCache
}

func NewGoogleDistanceProvider(apiKey string, opts GoogleOptions) (*GoogleDistanceProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(newHTTPClient(opts.Client, opts.MaxAttempts)),
	}
	if base := strings.TrimSuffix(opts.BaseURL, "/"); base != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(base))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}

	return &GoogleDistanceProvider{
		client:        client,
		distanceCache: opts.DistanceCache,
	}, nil
}

func (g *GoogleDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "google.GetDistance")(&err)

	origin = normalizeAddress(origin)
	destination = normalizeAddress(destination)
	if origin == "" || destination == "" {
		return ports.DistanceResult{}, errors.New("get google distance: origin and destination must be non-empty")
	}

	if cached, ok := g.cached(ctx, origin, destination); ok {
		return cached, nil
	}

	// Errors such as REQUEST_DENIED arrive with HTTP 200; the client turns a
	// top-level status other than OK into an error.
	resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if len(resp.Rows) != 1 || len(resp.Rows[0].Elements) != 1 || resp.Rows[0].Elements[0] == nil {
		return ports.DistanceResult{}, fmt.Errorf("expected a 1x1 matrix, got %d rows", len(resp.Rows))
	}

	el := resp.Rows[0].Elements[0]
	switch el.Status {
	case "OK":
	case "NOT_FOUND", "ZERO_RESULTS":
		return ports.DistanceResult{}, fmt.Errorf("%q -> %q: %s: %w", origin, destination, el.Status, ErrNoRoute)
	default:
		return ports.DistanceResult{}, fmt.Errorf("%q -> %q: element status %s", origin, destination, el.Status)
	}

	result := ports.DistanceResult{
		DistanceMeters:  el.Distance.Meters,
		DurationSeconds: int(el.Duration.Seconds()),
	}

	if g.distanceCache != nil {
		if err := g.distanceCache.PutMany(ctx, origin, map[string]ports.DistanceResult{destination: result}); err != nil {
			logCacheWrite(ctx, err)
		}
	}

	return result, nil
}

func (g *GoogleDistanceProvider) cached(ctx context.Context, origin, destination string) (ports.DistanceResult, bool) {
	if g.distanceCache == nil {
		return ports.DistanceResult{}, false
	}

	hits, err := g.distanceCache.GetMany(ctx, origin, []string{destination})
	if err != nil {
		logCacheRead(ctx, err)
		return ports.DistanceResult{}, false
	}

	r, ok := hits[destination]
	return r, ok
}
