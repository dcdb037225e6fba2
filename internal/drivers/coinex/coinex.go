// Package coinex provides the CoinEx exchange driver: market discovery,
// kline polling over the public web endpoints and a live trade feed over
// websocket.
package coinex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dewebdes/antra/internal/scraper"
	"github.com/dewebdes/antra/pkg/faulttolerance"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const ExchangeName = "coinex"

const (
	marketListAPI = "https://api.coinex.com/v1/market/list"
	serverTimeAPI = "https://www.coinex.com/res/system/time"

	// Kline rows come back as 7-element arrays:
	// [openTime, open, close, high, low, baseVolume, quoteVolume].
	klineAPI = "https://www.coinex.com/res/market/kline?market=%s&start_time=%d&end_time=%d&interval=%d"
)

// apiResponse is the envelope every CoinEx endpoint wraps its payload in.
type apiResponse struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client fetches public market data from CoinEx.
type Client struct {
	logger  *slog.Logger
	limiter *rate.Limiter
	retryer *faulttolerance.Retryer
	breaker *faulttolerance.CircuitBreaker
}

// NewClient creates a CoinEx client. The logrus logger feeds the
// faulttolerance package only.
func NewClient(logger *slog.Logger, ftLogger *logrus.Logger) *Client {
	return &Client{
		logger:  logger.With("driver", ExchangeName),
		limiter: scraper.DefaultRateLimiter(),
		retryer: faulttolerance.NewRetryer(faulttolerance.DefaultRetryConfig("coinex-markets"), ftLogger),
		breaker: faulttolerance.NewCircuitBreaker(faulttolerance.CircuitBreakerConfig{Name: "coinex-markets"}, ftLogger),
	}
}

// Markets returns the exchange market names quoted in the given currency,
// sorted. Pass "" to get everything.
func (c *Client) Markets(ctx context.Context, quote string) ([]string, error) {
	var names []string

	err := c.retryer.ExecuteWithCircuitBreaker(ctx, c.breaker, func() error {
		data, err := c.get(ctx, marketListAPI)
		if err != nil {
			return err
		}
		names = names[:0]
		return json.Unmarshal(data, &names)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}

	if quote != "" {
		filtered := names[:0]
		for _, name := range names {
			if scraper.QuoteCurrency(scraper.NormalizeSymbol(name)) == strings.ToUpper(quote) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	sort.Strings(names)
	c.logger.Info("Fetched markets", "count", len(names), "quote", quote)
	return names, nil
}

// ServerTime returns the exchange clock. Kline windows are computed from it
// so a skewed local clock does not drop the newest candle.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	data, err := c.get(ctx, serverTimeAPI)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch server time: %w", err)
	}

	var payload struct {
		CurrentTimestamp int64 `json:"current_timestamp"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(payload.CurrentTimestamp), nil
}

// get performs a rate-limited GET and unwraps the CoinEx envelope.
func (c *Client) get(ctx context.Context, url string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := scraper.DoWithRetry(ctx, req, 3, 2*time.Second)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if envelope.Code != 0 {
		return nil, fmt.Errorf("API error %d: %s", envelope.Code, envelope.Message)
	}
	return envelope.Data, nil
}
