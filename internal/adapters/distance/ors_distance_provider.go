package distance

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/platform/obs"
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

var _ ports.DistanceMatrixProvider = (*ORSDistanceProvider)(nil)

// ORSOptions tunes the OpenRouteService provider. Zero values select defaults.
type ORSOptions struct {
	BaseURL     string
	Profile     string
	Country     string
	MaxAttempts int
	Client      *http.Client

	DistanceCache ports.DistanceCache
	GeocodeCache  ports.GeocodeCache
}

// ORSDistanceProvider implements DistanceProvider using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Persistent distance caching
//   - External API calls
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	client        *http.Client
	apiKey        string
	baseURL       string
	profile       string
	country       string
	distanceCache ports.DistanceCache
	geocodeCache  ports.GeocodeCache
}

func NewORSDistanceProvider(apiKey string, opts ORSOptions) (*ORSDistanceProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDistanceProvider{
		client:        newHTTPClient(opts.Client, opts.MaxAttempts),
		apiKey:        apiKey,
		baseURL:       strings.TrimSuffix(opts.BaseURL, "/"),
		profile:       opts.Profile,
		country:       opts.Country,
		distanceCache: opts.DistanceCache,
		geocodeCache:  opts.GeocodeCache,
	}
	if provider.baseURL == "" {
		provider.baseURL = defaultORSBaseURL
	}
	if provider.profile == "" {
		provider.profile = "driving-car"
	}

	return provider, nil
}

// Delegate to the batched path to reuse caching and matrix logic.
func (o *ORSDistanceProvider) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	normOrigin := normalizeAddress(origin)
	normDestination := normalizeAddress(destination)
	if normOrigin == "" || normDestination == "" {
		return ports.DistanceResult{}, errors.New("get ORS distance: origin and destination must be non-empty")
	}

	// Same place: no request needed.
	if normOrigin == normDestination {
		return ports.DistanceResult{}, nil
	}

	results, err := o.GetDistances(ctx, normOrigin, []string{normDestination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distances %q -> %q: %w",
			normOrigin, normDestination, err,
		)
	}

	result, ok := results[normDestination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %q -> %q", origin, destination)
	}

	return result, nil
}

// Compute distances from a single origin to many destinations.
// Result keys are the normalized destination addresses. Destinations ORS
// cannot route are left out and reported in a *ports.UnroutableError next to
// the routable results.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	normOrigin := normalizeAddress(origin)
	if normOrigin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]string, 0, len(destinations))
	for _, d := range destinations {
		nd := normalizeAddress(d)
		if nd == "" || nd == normOrigin {
			continue
		}
		if _, ok := seen[nd]; ok {
			continue
		}

		seen[nd] = struct{}{}
		destList = append(destList, nd)
	}

	if len(destList) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	destinationHits := make(map[string]ports.DistanceResult)
	// Check persistent distance cache before issuing external API calls.
	if o.distanceCache != nil {
		hits, err := o.distanceCache.GetMany(ctx, normOrigin, destList)
		if err != nil {
			// A broken cache must not block lookups.
			logCacheRead(ctx, err)
		} else {
			destinationHits = hits
		}
	}

	destinationMisses := make([]string, 0, len(destList))
	for _, d := range destList {
		if _, ok := destinationHits[d]; !ok {
			destinationMisses = append(destinationMisses, d)
		}
	}

	if len(destinationMisses) == 0 {
		return destinationHits, nil
	}

	needed := append([]string{normOrigin}, destinationMisses...)

	coords, err := o.resolveCoordinates(ctx, needed)
	if err != nil {
		return nil, fmt.Errorf("retrieving coordinates: %w", err)
	}

	originCoord, ok := coords[normOrigin]
	if !ok {
		return nil, fmt.Errorf("missing coordinate for origin %q", normOrigin)
	}

	targets := make([]located, 0, len(destinationMisses))
	for _, d := range destinationMisses {
		coord, ok := coords[d]
		if !ok {
			return nil, fmt.Errorf("missing coordinate for destination %q", d)
		}
		targets = append(targets, located{address: d, coord: coord})
	}

	// Fetch a single origin->many matrix row for all cache misses.
	row, err := o.fetchMatrixRow(ctx, originCoord, targets)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	if o.distanceCache != nil && len(row.routes) > 0 {
		if err := o.distanceCache.PutMany(ctx, normOrigin, row.routes); err != nil {
			logCacheWrite(ctx, err)
		}
	}

	out := make(map[string]ports.DistanceResult, len(destinationHits)+len(row.routes))
	for k, v := range destinationHits {
		out[k] = v
	}
	for k, v := range row.routes {
		out[k] = v
	}

	if len(row.unroutable) > 0 {
		return out, &ports.UnroutableError{Origin: normOrigin, Destinations: row.unroutable}
	}
	return out, nil
}

// resolveCoordinates geocodes addresses, consulting the geocode cache first
// and storing fresh results back into it.
func (o *ORSDistanceProvider) resolveCoordinates(
	ctx context.Context,
	addresses []string,
) (map[string]domain.Coordinates, error) {
	hits := make(map[string]domain.Coordinates)
	if o.geocodeCache != nil {
		cached, err := o.geocodeCache.GetMany(ctx, addresses)
		if err != nil {
			slog.WarnContext(ctx, "geocode cache read failed", "err", err)
		} else {
			hits = cached
		}
	}

	misses := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	if len(misses) == 0 {
		return hits, nil
	}

	fresh, err := o.geocodeMany(ctx, misses)
	if err != nil {
		return nil, err
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			slog.WarnContext(ctx, "geocode cache write failed", "err", err)
		}
	}

	for k, v := range fresh {
		hits[k] = v
	}
	return hits, nil
}

func (o *ORSDistanceProvider) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// normalizeAddress collapses whitespace so cache keys stay consistent.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
