package cache

import (
	"commute-compensation-service/internal/ports"
	"strings"
)

var (
	_ ports.DistanceCache = (*SQLDistanceCache)(nil)
	_ ports.DistanceCache = (*SqliteDistanceCache)(nil)
	_ ports.GeocodeCache  = (*SQLGeocodeCache)(nil)
	_ ports.GeocodeCache  = (*SqliteGeocodeCache)(nil)
)

// uniqueKeys trims keys and drops empties and duplicates, keeping order.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}

// placeholders returns "?,?,..." for an IN clause of n values.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
