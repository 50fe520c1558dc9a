package distance

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_ResendsBodyOnRetry(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()

		if n == 1 {
			http.Error(w, "bad gateway", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := newHTTPClient(nil, 2)
	req, err := http.NewRequest(http.MethodPost, srv.URL, bytes.NewReader([]byte(`{"locations":[]}`)))
	require.NoError(t, err)

	resp, err := doJSON(client, req)
	require.NoError(t, err)
	resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{`{"locations":[]}`, `{"locations":[]}`}, bodies)
}

func TestHTTPClient_ReturnsLastStatusWhenBudgetSpent(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "still down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = doJSON(newHTTPClient(nil, 2), req)
	require.Error(t, err)

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
	assert.Equal(t, "still down", he.Body)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestHTTPClient_KeepsCallerClient(t *testing.T) {
	caller := &http.Client{}
	c := newHTTPClient(caller, 3)

	assert.Nil(t, caller.Transport)
	rt, ok := c.Transport.(*retryTransport)
	require.True(t, ok)
	assert.Equal(t, 3, rt.maxAttempts)
}
