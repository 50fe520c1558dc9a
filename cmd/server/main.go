package main

import (
	"commute-compensation-service/internal/adapters/cache"
	"commute-compensation-service/internal/adapters/distance"
	"commute-compensation-service/internal/adapters/repositories"
	"commute-compensation-service/internal/api"
	"commute-compensation-service/internal/config"
	"commute-compensation-service/internal/platform/db"
	"commute-compensation-service/internal/platform/logging"
	"commute-compensation-service/internal/session"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// run is the application composition root.
// It wires concrete adapters (JSON directory, distance provider, SQL caches)
// behind ports and serves HTTP until interrupted. Deferred cleanup runs on
// every return path.
func run() error {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, "commute-compensation")
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, using environment variables")
	}

	dir, err := repositories.LoadJSONDirectory(cfg.TechniciansPath, cfg.ProjectsPath)
	if err != nil {
		return fmt.Errorf("load directory: %w", err)
	}
	logger.Info("directory loaded",
		"technicians", len(dir.Technicians()),
		"projects", len(dir.Projects()),
	)

	if cfg.DatabaseURL == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.CacheDBPath), 0o755); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}
	conn, dialect, err := db.Open(cfg.DatabaseURL, cfg.CacheDBPath)
	if err != nil {
		return fmt.Errorf("open cache database: %w", err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cache.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}
	caches, err := cache.New(conn, dialect)
	if err != nil {
		return fmt.Errorf("create caches: %w", err)
	}

	provider, err := distance.NewFromConfig(cfg, caches.Distance, caches.Geocode)
	if err != nil {
		return fmt.Errorf("create distance provider: %w", err)
	}

	router := api.NewRouter(dir, provider, session.NewStore(cfg.SessionTTL), api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Each form submission makes two sequential distance calls; the write
	// timeout covers both at the client timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	logger.Info("server listening",
		"addr", srv.Addr,
		"provider", cfg.DistanceProvider,
		"cache", string(dialect),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
