package scryfall

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuery = "q=-t%3Aconspiracy+r>u+usd<%3D2&format=text"

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:        serverURL,
		RateLimitDelay: time.Millisecond,
		RequestTimeout: 2 * time.Second,
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient(ClientConfig{})

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.rateLimiter == nil {
		t.Error("rateLimiter is nil")
	}
	if !strings.HasPrefix(client.userAgent, "beejlander/") {
		t.Errorf("unexpected userAgent %q", client.userAgent)
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected base URL %s, got %s", DefaultBaseURL, client.baseURL)
	}
}

func TestClient_RandomCardURL(t *testing.T) {
	client := NewClient(ClientConfig{})
	assert.Equal(t, "https://api.scryfall.com/cards/random?"+testQuery, client.RandomCardURL(testQuery))
}

func TestClient_RandomCardText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/random", r.URL.Path)
		assert.Equal(t, testQuery, r.URL.RawQuery)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Lightning Bolt {R}\nInstant\nLightning Bolt deals 3 damage to any target."))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	body, err := client.RandomCardText(context.Background(), testQuery)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body, "Lightning Bolt {R}\nInstant"))
}

func TestClient_RateLimiting(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.Write([]byte("Shock {R}\nInstant"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, RateLimitDelay: 50 * time.Millisecond})
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.RandomCardText(ctx, testQuery); err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
	}
	elapsed := time.Since(start)

	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount))

	// Should take at least 100ms (2 delays of 50ms each between 3 requests)
	minDuration := 100 * time.Millisecond
	if elapsed < minDuration {
		t.Errorf("Rate limiting not working: completed 3 requests in %v (expected >= %v)", elapsed, minDuration)
	}
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","code":"not_found","status":404,"details":"Your query didn't match any cards."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.RandomCardText(context.Background(), testQuery)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "didn't match any cards")
}

func TestClient_NoRetryOnServerError(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"object":"error","code":"rate_limit","status":429,"details":"Too many requests"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.RandomCardText(context.Background(), testQuery)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "rate_limit", apiErr.Code)
	assert.False(t, IsNotFound(err))
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.RandomCardText(context.Background(), testQuery)
	require.Error(t, err)
	assert.True(t, IsFetchError(err))
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		RateLimitDelay: time.Millisecond,
		RequestTimeout: 50 * time.Millisecond,
	})

	_, err := client.RandomCardText(context.Background(), testQuery)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 0, fetchErr.StatusCode)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Shock {R}\nInstant"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.RandomCardText(ctx, testQuery)
	require.Error(t, err)
	assert.True(t, IsFetchError(err))
	assert.True(t, errors.Is(err, context.Canceled))
}
