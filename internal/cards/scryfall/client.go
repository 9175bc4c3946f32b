package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ramonehamilton/beejlander/internal/version"
)

const (
	// DefaultBaseURL is the public Scryfall API.
	DefaultBaseURL = "https://api.scryfall.com"

	randomCardPath = "/cards/random"

	defaultRateLimitDelay = 100 * time.Millisecond // Scryfall asks for 50-100ms between requests
	defaultRequestTimeout = 30 * time.Second

	// maxBodySize caps how much of a response is read. Text cards are tiny.
	maxBodySize = 1 << 20
)

// ClientConfig configures a Client. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	RateLimitDelay time.Duration
	HTTPClient     *http.Client // overrides RequestTimeout when set
}

// Client represents a Scryfall API client with rate limiting.
// It performs exactly one request per call and never retries.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	baseURL     string
}

// NewClient creates a new Scryfall API client.
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = version.UserAgent()
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaultRequestTimeout
	}
	if config.RateLimitDelay <= 0 {
		config.RateLimitDelay = defaultRateLimitDelay
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.RequestTimeout,
		}
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Every(config.RateLimitDelay), 1),
		userAgent:   config.UserAgent,
		baseURL:     config.BaseURL,
	}
}

// RandomCardURL returns the URL fetched for a query string.
func (c *Client) RandomCardURL(query string) string {
	return fmt.Sprintf("%s%s?%s", c.baseURL, randomCardPath, query)
}

// RandomCardText fetches one random card matching query and returns the raw
// response body. The query must already be encoded and should request the
// text format.
func (c *Client) RandomCardText(ctx context.Context, query string) (string, error) {
	url := c.RandomCardURL(query)

	body, err := c.doRequest(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// doRequest performs a single rate-limited GET request.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	// Wait for rate limiter
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain;q=1.0, application/json;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: statusError(url, resp.StatusCode, body)}
}

// statusError builds the cause for a non-success response.
func statusError(url string, status int, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Object == "error" {
		if apiErr.Status == 0 {
			apiErr.Status = status
		}
		if status == http.StatusNotFound {
			return &NotFoundError{URL: url, Details: apiErr.Details}
		}
		return &apiErr
	}

	if status == http.StatusNotFound {
		return &NotFoundError{URL: url}
	}
	return fmt.Errorf("unexpected status %d: %s", status, truncate(string(body), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
