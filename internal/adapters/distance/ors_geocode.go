package distance

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/platform/obs"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocodeMany resolves addresses one at a time using OpenRouteService
// (/geocode/search). Input addresses must already be normalized.
func (o *ORSDistanceProvider) geocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocodeMany")(&err)

	out := make(map[string]domain.Coordinates, len(addresses))
	for _, a := range addresses {
		if _, ok := out[a]; ok {
			continue
		}

		coord, err := o.geocode(ctx, a)
		if err != nil {
			return nil, err
		}
		out[a] = coord
	}

	return out, nil
}

func (o *ORSDistanceProvider) geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := o.baseURL + "/geocode/search"

	req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinates{}, err
	}
	q := req.URL.Query()
	q.Set("text", address)
	if o.country != "" {
		q.Set("boundary.country", o.country)
	}
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := doJSON(o.client, req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	c := domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: coordinates out of range: %s", address, c)
	}

	return c, nil
}
