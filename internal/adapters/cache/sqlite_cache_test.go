package cache

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/platform/db"
	"commute-compensation-service/internal/ports"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSqlite(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, db.DialectSQLite))
	return conn
}

func TestSqliteDistanceCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteDistanceCache(setupSqlite(t))

	err := c.PutMany(ctx, "1 Home St", map[string]ports.DistanceResult{
		"2 Site Ave": {DistanceMeters: 52300, DurationSeconds: 2400},
		"3 Depot Rd": {DistanceMeters: 8100, DurationSeconds: 600},
	})
	require.NoError(t, err)

	got, err := c.GetMany(ctx, "1 Home St", []string{"2 Site Ave", " 2 Site Ave ", "9 Unknown", ""})
	require.NoError(t, err)

	assert.Equal(t, map[string]ports.DistanceResult{
		"2 Site Ave": {DistanceMeters: 52300, DurationSeconds: 2400},
	}, got)
}

func TestSqliteDistanceCacheOverwrites(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteDistanceCache(setupSqlite(t))

	require.NoError(t, c.PutMany(ctx, "A", map[string]ports.DistanceResult{"B": {DistanceMeters: 1}}))
	require.NoError(t, c.PutMany(ctx, "A", map[string]ports.DistanceResult{"B": {DistanceMeters: 2}}))

	got, err := c.GetMany(ctx, "A", []string{"B"})
	require.NoError(t, err)
	assert.Equal(t, 2, got["B"].DistanceMeters)
}

func TestSqliteDistanceCacheRejectsEmptyKeys(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteDistanceCache(setupSqlite(t))

	_, err := c.GetMany(ctx, "", []string{"B"})
	assert.Error(t, err)

	err = c.PutMany(ctx, "A", map[string]ports.DistanceResult{"  ": {}})
	assert.Error(t, err)
}

func TestSqliteDistanceCachePurge(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteDistanceCache(setupSqlite(t))

	require.NoError(t, c.PutMany(ctx, "A", map[string]ports.DistanceResult{"B": {DistanceMeters: 1}}))

	n, err := c.Purge(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.Purge(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := c.GetMany(ctx, "A", []string{"B"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(setupSqlite(t))

	want := map[string]domain.Coordinates{
		"1 Home St":  {Lon: -73.56, Lat: 45.50},
		"2 Site Ave": {Lon: -71.21, Lat: 46.81},
	}
	require.NoError(t, c.PutMany(ctx, want))

	got, err := c.GetMany(ctx, []string{"1 Home St", "2 Site Ave", "1 Home St", "nowhere"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewCachesSelectsBackend(t *testing.T) {
	conn := setupSqlite(t)

	caches, err := New(conn, db.DialectSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SqliteDistanceCache{}, caches.Distance)
	assert.IsType(t, &SqliteGeocodeCache{}, caches.Geocode)

	_, err = New(conn, db.Dialect("oracle"))
	assert.Error(t, err)
}
