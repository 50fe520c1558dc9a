package cache

import (
	"commute-compensation-service/internal/platform/db"
	"commute-compensation-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        fetched_at INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_distance_cache_fetched_at
    ON distance_cache(fetched_at);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        PRIMARY KEY (origin, destination)
    );
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_distance_cache_fetched_at
    ON distance_cache(fetched_at);
	`,
}

// InitSchema creates the cache tables for the given dialect.
func InitSchema(ctx context.Context, conn *sql.DB, dialect db.Dialect) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch dialect {
	case db.DialectSQLite:
		statements = sqliteSchema
	case db.DialectPostgres:
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported dialect %q", dialect)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// DistanceStore is a distance cache that can also drop stale rows.
type DistanceStore interface {
	ports.DistanceCache
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// Caches bundles the distance and geocode caches of one backend.
type Caches struct {
	Distance DistanceStore
	Geocode  ports.GeocodeCache
}

// New returns the caches matching the connection's dialect.
func New(conn *sql.DB, dialect db.Dialect) (*Caches, error) {
	switch dialect {
	case db.DialectSQLite:
		return &Caches{
			Distance: NewSqliteDistanceCache(conn),
			Geocode:  NewSqliteGeocodeCache(conn),
		}, nil
	case db.DialectPostgres:
		return &Caches{
			Distance: NewSQLDistanceCache(conn),
			Geocode:  NewSQLGeocodeCache(conn),
		}, nil
	default:
		return nil, fmt.Errorf("new caches: unsupported dialect %q", dialect)
	}
}
