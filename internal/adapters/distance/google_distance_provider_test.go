package distance

import (
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoogleTestServer(t *testing.T, body string, hits *int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)

		if r.URL.Path != "/maps/api/distancematrix/json" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("mode") != "driving" || q.Get("key") != "test-key" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		if q.Get("origins") != "1 Home St" || q.Get("destinations") != "2 Site Rd" {
			http.Error(w, "unexpected addresses", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleDistanceProvider_OK(t *testing.T) {
	var hits int32
	srv := newGoogleTestServer(t, `{
		"status": "OK",
		"rows": [{"elements": [{"status": "OK", "distance": {"value": 50123}, "duration": {"value": 2400}}]}]
	}`, &hits)

	p, err := NewGoogleDistanceProvider("test-key", GoogleOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	got, err := p.GetDistance(context.Background(), "  1 Home   St ", "2 Site Rd")
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 50123, DurationSeconds: 2400}, got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestGoogleDistanceProvider_TopLevelStatus(t *testing.T) {
	var hits int32
	srv := newGoogleTestServer(t, `{"status": "REQUEST_DENIED", "error_message": "bad key", "rows": []}`, &hits)

	p, err := NewGoogleDistanceProvider("test-key", GoogleOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.GetDistance(context.Background(), "1 Home St", "2 Site Rd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestGoogleDistanceProvider_ElementNotFound(t *testing.T) {
	var hits int32
	srv := newGoogleTestServer(t, `{"status": "OK", "rows": [{"elements": [{"status": "NOT_FOUND"}]}]}`, &hits)

	p, err := NewGoogleDistanceProvider("test-key", GoogleOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.GetDistance(context.Background(), "1 Home St", "2 Site Rd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestGoogleDistanceProvider_NoRetryByDefault(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	p, err := NewGoogleDistanceProvider("test-key", GoogleOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.GetDistance(context.Background(), "1 Home St", "2 Site Rd")
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestGoogleDistanceProvider_RetriesTransientStatus(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "OK", "distance": {"value": 50000}, "duration": {"value": 1800}}]}]
		}`))
	}))
	t.Cleanup(srv.Close)

	p, err := NewGoogleDistanceProvider("test-key", GoogleOptions{BaseURL: srv.URL, MaxAttempts: 3})
	require.NoError(t, err)

	got, err := p.GetDistance(context.Background(), "1 Home St", "2 Site Rd")
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 50000, DurationSeconds: 1800}, got)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestGoogleDistanceProvider_DoesNotRetryClientError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	p, err := NewGoogleDistanceProvider("test-key", GoogleOptions{BaseURL: srv.URL, MaxAttempts: 3})
	require.NoError(t, err)

	_, err = p.GetDistance(context.Background(), "1 Home St", "2 Site Rd")
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestGoogleDistanceProvider_UsesCache(t *testing.T) {
	var hits int32
	srv := newGoogleTestServer(t, `{
		"status": "OK",
		"rows": [{"elements": [{"status": "OK", "distance": {"value": 1000}, "duration": {"value": 60}}]}]
	}`, &hits)

	cache := newMemoryDistanceCache()
	p, err := NewGoogleDistanceProvider("test-key", GoogleOptions{BaseURL: srv.URL, DistanceCache: cache})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := p.GetDistance(context.Background(), "1 Home St", "2 Site Rd")
		require.NoError(t, err)
		assert.Equal(t, 1000, got.DistanceMeters)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestNewGoogleDistanceProvider_EmptyKey(t *testing.T) {
	_, err := NewGoogleDistanceProvider("  ", GoogleOptions{})
	require.Error(t, err)
}
