package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for the feed HTTP client.
type HTTPClientConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
}

// DefaultHTTPClientConfig returns recommended defaults for the feed.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:      30 * time.Second,
		MaxRetries:   4,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 10 * time.Second,
		RateLimit:    5.0,
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting,
// so batch cycles stay polite toward the feed host.
type RateLimitedHTTPClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client.
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *log.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = feedRetryPolicy()
	retryClient.Logger = logger

	return &RateLimitedHTTPClient{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  logger,
	}
}

// Get executes a rate-limited GET request.
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, err
	}

	return c.client.Do(retryReq)
}

// Close closes any resources held by the client.
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// feedRetryPolicy retries network errors, rate limits and server errors.
func feedRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return true, err
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}
