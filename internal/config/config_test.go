package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISTANCE_PROVIDER", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("DISTANCE_MAX_ATTEMPTS", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGoogle, cfg.DistanceProvider)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1, cfg.DistanceMaxAttempts)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "data/technicians.json", cfg.TechniciansPath)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.CORSAllowedOrigins)
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("DISTANCE_PROVIDER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRequiresProviderKey(t *testing.T) {
	t.Setenv("DISTANCE_PROVIDER", "ors")
	t.Setenv("ORS_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORS_API_KEY")
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("DISTANCE_PROVIDER", "bing")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadAttempts(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "k")
	t.Setenv("DISTANCE_PROVIDER", "google")
	t.Setenv("DISTANCE_MAX_ATTEMPTS", "0")

	_, err := Load()
	require.Error(t, err)
}
