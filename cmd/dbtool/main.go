package main

import (
	"commute-compensation-service/internal/adapters/cache"
	"commute-compensation-service/internal/adapters/distance"
	"commute-compensation-service/internal/adapters/repositories"
	"commute-compensation-service/internal/config"
	"commute-compensation-service/internal/platform/db"
	"commute-compensation-service/internal/platform/logging"
	"commute-compensation-service/internal/services"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares the distance cache database and checks the lookup files.
//
//	dbtool                          create the cache tables
//	dbtool -purge-older-than 720h   drop cached distances fetched before now-720h
//	dbtool -warm                    look up every home/site pair ahead of time
func main() {
	purgeOlderThan := flag.Duration("purge-older-than", 0, "delete cached distances older than this duration")
	warm := flag.Bool("warm", false, "fill the distance cache for every technician and project")
	flag.Parse()

	if err := run(*purgeOlderThan, *warm); err != nil {
		slog.Error("dbtool failed", "err", err)
		os.Exit(1)
	}
}

func run(purgeOlderThan time.Duration, warm bool) error {
	envErr := godotenv.Load()

	logger := logging.New(os.Stdout, config.Get("LOG_LEVEL", logging.LevelInfo), "dbtool")
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, using environment variables")
	}

	ctx := context.Background()

	dir, err := repositories.LoadJSONDirectory(
		config.Get("TECHNICIANS_PATH", "data/technicians.json"),
		config.Get("PROJECTS_PATH", "data/projects.json"),
	)
	if err != nil {
		return fmt.Errorf("directory check: %w", err)
	}
	logger.Info("directory ok", "technicians", len(dir.Technicians()), "projects", len(dir.Projects()))

	databaseURL := config.Get("DATABASE_URL", "")
	cachePath := config.Get("CACHE_DB_PATH", "data/cache.db")
	if databaseURL == "" {
		if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}

	conn, dialect, err := db.Open(databaseURL, cachePath)
	if err != nil {
		return fmt.Errorf("open cache database: %w", err)
	}
	defer conn.Close()

	logger.Info("initializing cache schema", "dialect", string(dialect))
	if err := cache.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}
	logger.Info("schema ready")

	caches, err := cache.New(conn, dialect)
	if err != nil {
		return fmt.Errorf("create caches: %w", err)
	}

	if purgeOlderThan > 0 {
		before := time.Now().Add(-purgeOlderThan)
		n, err := caches.Distance.Purge(ctx, before)
		if err != nil {
			return fmt.Errorf("purge: %w", err)
		}
		logger.Info("purged cached distances", "rows", n, "before", before.Format(time.RFC3339))
	}

	if warm {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		provider, err := distance.NewFromConfig(cfg, caches.Distance, caches.Geocode)
		if err != nil {
			return fmt.Errorf("create distance provider: %w", err)
		}

		report := services.WarmDistanceCache(ctx, dir, provider)
		for _, err := range report.Errors {
			logger.Warn("warm lookup failed", "err", err)
		}
		logger.Info("cache warmed", "pairs", report.Pairs, "failed", report.Failed)
	}
	return nil
}
