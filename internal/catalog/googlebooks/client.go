package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Unauthenticated Google Books quota is roughly 100 requests per minute;
	// stay well under it.
	defaultRPS   = 1.0
	defaultBurst = 5

	defaultTimeout = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	// BaseURL is the volumes endpoint. Defaults to the public API.
	BaseURL string
	// APIKey is optional and raises quotas when set.
	APIKey string
	// Timeout for each search request. Defaults to 30s.
	Timeout time.Duration
}

// Client is a rate-limited Google Books API client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	logger      *slog.Logger
}

// NewClient creates a new Google Books client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1/volumes"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		baseURL:     baseURL,
		apiKey:      opts.APIKey,
		logger:      logger,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
