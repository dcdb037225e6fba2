package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// DefaultRateLimiter returns the limiter used for polling exchange HTTP
// endpoints: 2 requests per second with a small burst.
func DefaultRateLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(2), 5)
}

// DoWithRetry performs the request, retrying up to attempts times with a
// fixed delay. Server errors (5xx) and transport errors are retried; any
// other response is returned to the caller as is.
func DoWithRetry(ctx context.Context, req *http.Request, attempts int, delay time.Duration) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := httpClient.Do(req.WithContext(ctx))
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", attempts, lastErr)
}
