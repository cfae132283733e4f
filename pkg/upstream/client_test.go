package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

func newTestClient(cache *Cache) *Client {
	return NewClient(Config{UserAgent: "gaia-test"}, cache, logging.NewNopLogger(),
		metrics.NewCollector("gaia_test", prometheus.NewRegistry()))
}

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gaia-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"value": 42}`))
	}))
	defer srv.Close()

	var out struct {
		Value int `json:"value"`
	}
	err := newTestClient(nil).GetJSON(context.Background(), Request{Upstream: "test", URL: srv.URL}, &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(nil).Get(context.Background(), Request{Upstream: "test", URL: srv.URL})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.True(t, statusErr.IsTransient())
}

func TestClient_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestClient(nil).Get(context.Background(), Request{Upstream: "test", URL: srv.URL})
	assert.True(t, errors.Is(err, ErrEmptyBody))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := newTestClient(nil).Get(context.Background(), Request{Upstream: "test", URL: srv.URL, Timeout: 50 * time.Millisecond})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Cache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	cache := NewCache(0)
	defer cache.Close()
	client := newTestClient(cache)

	for i := 0; i < 3; i++ {
		body, err := client.Get(context.Background(), Request{Upstream: "test", URL: srv.URL, CacheTTL: time.Minute})
		require.NoError(t, err)
		assert.Equal(t, "payload", string(body))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCache_Expiry(t *testing.T) {
	cache := NewCache(0)
	defer cache.Close()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("k", []byte("v"), time.Minute)
	_, ok := cache.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok)

	cache.purge()
	assert.Equal(t, 0, cache.Len())
}
