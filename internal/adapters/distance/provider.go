package distance

import (
	"commute-compensation-service/internal/config"
	"commute-compensation-service/internal/ports"
	"fmt"
)

// NewFromConfig builds the provider selected by DISTANCE_PROVIDER. Either
// cache may be nil.
func NewFromConfig(
	cfg *config.Config,
	distanceCache ports.DistanceCache,
	geocodeCache ports.GeocodeCache,
) (ports.DistanceProvider, error) {
	switch cfg.DistanceProvider {
	case config.ProviderGoogle:
		return NewGoogleDistanceProvider(cfg.GoogleMapsAPIKey, GoogleOptions{
			MaxAttempts:   cfg.DistanceMaxAttempts,
			DistanceCache: distanceCache,
		})
	case config.ProviderORS:
		return NewORSDistanceProvider(cfg.ORSAPIKey, ORSOptions{
			Country:       cfg.ORSCountry,
			MaxAttempts:   cfg.DistanceMaxAttempts,
			DistanceCache: distanceCache,
			GeocodeCache:  geocodeCache,
		})
	default:
		return nil, fmt.Errorf("new distance provider: unknown provider %q", cfg.DistanceProvider)
	}
}
