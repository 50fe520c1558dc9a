package distance

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/ports"
	"context"
	"sync"
)

type memoryDistanceCache struct {
	mu sync.Mutex
	m  map[string]ports.DistanceResult
}

func newMemoryDistanceCache() *memoryDistanceCache {
	return &memoryDistanceCache{m: map[string]ports.DistanceResult{}}
}

func (c *memoryDistanceCache) GetMany(_ context.Context, origin string, dests []string) (map[string]ports.DistanceResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]ports.DistanceResult)
	for _, d := range dests {
		if r, ok := c.m[origin+"|"+d]; ok {
			out[d] = r
		}
	}
	return out, nil
}

func (c *memoryDistanceCache) PutMany(_ context.Context, origin string, results map[string]ports.DistanceResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for d, r := range results {
		c.m[origin+"|"+d] = r
	}
	return nil
}

type memoryGeocodeCache struct {
	mu sync.Mutex
	m  map[string]domain.Coordinates
}

func newMemoryGeocodeCache() *memoryGeocodeCache {
	return &memoryGeocodeCache{m: map[string]domain.Coordinates{}}
}

func (c *memoryGeocodeCache) GetMany(_ context.Context, addrs []string) (map[string]domain.Coordinates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]domain.Coordinates)
	for _, a := range addrs {
		if v, ok := c.m[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

func (c *memoryGeocodeCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range results {
		c.m[k] = v
	}
	return nil
}
