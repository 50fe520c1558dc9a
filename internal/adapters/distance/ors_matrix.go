package distance

import (
	"bytes"
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/ports"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

// located is a normalized address with its geocoded position.
type located struct {
	address string
	coord   domain.Coordinates
}

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Units        string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// matrixRow is the answer for one origin. Every requested target lands in
// exactly one of routes or unroutable.
type matrixRow struct {
	routes     map[string]ports.DistanceResult
	unroutable []string
}

// fetchMatrixRow asks the ORS matrix endpoint for the driving distance from
// origin to each target in a single request. Location 0 is the origin and
// targets follow in order.
func (o *ORSDistanceProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	targets []located,
) (matrixRow, error) {
	if len(targets) == 0 {
		return matrixRow{routes: map[string]ports.DistanceResult{}}, nil
	}

	body := matrixRequest{
		Locations:    make([][]float64, 0, 1+len(targets)),
		Sources:      []int{0},
		Destinations: make([]int, 0, len(targets)),
		Metrics:      []string{"distance", "duration"},
		Units:        "m",
	}
	body.Locations = append(body.Locations, origin.CoordsToList())
	for i, t := range targets {
		body.Locations = append(body.Locations, t.coord.CoordsToList())
		body.Destinations = append(body.Destinations, i+1)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return matrixRow{}, fmt.Errorf("marshal matrix request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)
	req, err := o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return matrixRow{}, err
	}

	resp, err := doJSON(o.client, req)
	if err != nil {
		return matrixRow{}, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return matrixRow{}, fmt.Errorf("decode matrix response: %w", err)
	}

	return parseMatrixRow(mr, targets)
}

// parseMatrixRow splits the single source row into routes and unroutable
// targets. ORS reports a pair it cannot route as null; that only affects the
// pair itself.
func parseMatrixRow(mr matrixResponse, targets []located) (matrixRow, error) {
	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return matrixRow{}, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	distances, durations := mr.Distances[0], mr.Durations[0]
	if len(distances) != len(targets) || len(durations) != len(targets) {
		return matrixRow{}, fmt.Errorf(
			"matrix row has %d distances and %d durations for %d targets",
			len(distances), len(durations), len(targets),
		)
	}

	row := matrixRow{routes: make(map[string]ports.DistanceResult, len(targets))}
	for i, t := range targets {
		if distances[i] == nil || durations[i] == nil {
			row.unroutable = append(row.unroutable, t.address)
			continue
		}
		row.routes[t.address] = ports.DistanceResult{
			DistanceMeters:  int(math.Round(*distances[i])),
			DurationSeconds: int(math.Round(*durations[i])),
		}
	}

	return row, nil
}
