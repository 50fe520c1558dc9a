package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGoogle = "google"
	ProviderORS    = "ors"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	Port     string
	LogLevel string

	TechniciansPath string
	ProjectsPath    string

	DistanceProvider    string
	GoogleMapsAPIKey    string
	ORSAPIKey           string
	ORSCountry          string
	DistanceMaxAttempts int

	CacheDBPath string
	DatabaseURL string

	SessionTTL         time.Duration
	CORSAllowedOrigins []string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads and validates the configuration. The caller is expected to
// have loaded any .env file beforehand.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             Get("PORT", "8080"),
		LogLevel:         Get("LOG_LEVEL", "INFO"),
		TechniciansPath:  Get("TECHNICIANS_PATH", "data/technicians.json"),
		ProjectsPath:     Get("PROJECTS_PATH", "data/projects.json"),
		DistanceProvider: strings.ToLower(Get("DISTANCE_PROVIDER", ProviderGoogle)),
		GoogleMapsAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		ORSAPIKey:        strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSCountry:       Get("ORS_COUNTRY", "CA"),
		CacheDBPath:      Get("CACHE_DB_PATH", "data/cache.db"),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
	}

	attempts, err := strconv.Atoi(Get("DISTANCE_MAX_ATTEMPTS", "1"))
	if err != nil || attempts < 1 {
		return nil, fmt.Errorf("load config: DISTANCE_MAX_ATTEMPTS must be a positive integer")
	}
	cfg.DistanceMaxAttempts = attempts

	ttl, err := time.ParseDuration(Get("SESSION_TTL", "12h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("load config: SESSION_TTL must be a positive duration")
	}
	cfg.SessionTTL = ttl

	for _, o := range strings.Split(Get("CORS_ALLOWED_ORIGINS", "http://localhost:8080"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DistanceProvider {
	case ProviderGoogle:
		if c.GoogleMapsAPIKey == "" {
			return errors.New("GOOGLE_MAPS_API_KEY is required")
		}
	case ProviderORS:
		if c.ORSAPIKey == "" {
			return errors.New("ORS_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown DISTANCE_PROVIDER %q", c.DistanceProvider)
	}
	return nil
}
