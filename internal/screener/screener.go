// Package screener polls exchange klines on a fixed interval, runs the
// candle analysis pass over each market and publishes the results to Kafka:
// signal snapshots on one topic, the raw candles on another.
package screener

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dewebdes/antra/configs"
	"github.com/dewebdes/antra/internal/analysis"
	"github.com/dewebdes/antra/internal/drivers/coinex"
	"github.com/dewebdes/antra/internal/scraper"

	"github.com/segmentio/kafka-go"
)

// Screener is the polling analysis service.
type Screener struct {
	client       *coinex.Client
	candleSender *scraper.Sender
	signalSender *scraper.Sender
	config       configs.ScreenerConfig
	pulseConfig  analysis.PulseConfig
	logger       *slog.Logger
}

// New creates a screener publishing to the given candle and signal writers.
func New(
	client *coinex.Client,
	candleWriter, signalWriter *kafka.Writer,
	config configs.ScreenerConfig,
	logger *slog.Logger,
) *Screener {
	logger = logger.With("scraper", "coinex-screener")

	return &Screener{
		client:       client,
		candleSender: scraper.NewSender(candleWriter, logger),
		signalSender: scraper.NewSender(signalWriter, logger),
		config:       config,
		pulseConfig: analysis.PulseConfig{
			VolBaselineWindow: config.VolBaselineWindow,
			StabilityWindow:   config.StabilityWindow,
			StdevWindow:       config.StdevWindow,
		},
		logger: logger,
	}
}

func (sc *Screener) Name() string { return "coinex-screener" }

// Run executes one cycle immediately, then repeats every poll interval until
// the context is cancelled.
func (sc *Screener) Run(ctx context.Context) error {
	sc.logger.Info("Starting screener",
		"poll_interval", sc.config.PollInterval,
		"candle_count", sc.config.CandleCount,
	)

	sc.runCycle(ctx)

	ticker := time.NewTicker(sc.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sc.runCycle(ctx)
		}
	}
}

// runCycle analyzes every market once. Per-market failures are logged and
// skipped; the batch always completes.
func (sc *Screener) runCycle(ctx context.Context) {
	markets := sc.config.Markets
	if len(markets) == 0 {
		discovered, err := sc.client.Markets(ctx, "USDT")
		if err != nil {
			sc.logger.Error("Market discovery failed", "error", err)
			return
		}
		markets = discovered
	}

	start := time.Now()
	jobs := make(chan string)
	var wg sync.WaitGroup

	workers := sc.config.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for market := range jobs {
				if err := sc.analyzeMarket(ctx, market); err != nil {
					sc.logger.Warn("Market skipped", "market", market, "error", err)
				}
			}
		}()
	}

	for _, market := range markets {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- market:
		}
	}
	close(jobs)
	wg.Wait()

	sc.logger.Info("Cycle completed", "markets", len(markets), "took", time.Since(start).Round(time.Millisecond))
}

func (sc *Screener) analyzeMarket(ctx context.Context, market string) error {
	series, err := sc.client.Klines(ctx, market, sc.config.CandleInterval, sc.config.CandleCount)
	if err != nil {
		return err
	}

	symbol := scraper.NormalizeSymbol(market)
	interval := sc.config.CandleInterval.String()

	for _, candle := range series {
		if err := sc.candleSender.SendJSON(ctx, candleMessage(symbol, interval, candle)); err != nil {
			sc.logger.Debug("Candle send error", "symbol", symbol, "error", err)
		}
	}

	snapshot, err := BuildSnapshot(symbol, interval, series, sc.pulseConfig, time.Now())
	if err != nil {
		return err
	}

	if snapshot.Status != string(analysis.StatusNoPump) {
		sc.logger.Info("Pulse detected",
			"symbol", symbol,
			"status", snapshot.Status,
			"drawdown", snapshot.DrawdownPercent,
			"rating", snapshot.Rating,
		)
	}

	return sc.signalSender.SendJSON(ctx, snapshot)
}

// candleMessage converts one validated candle to its wire form. The ID is
// deterministic so re-polled candles dedupe downstream.
func candleMessage(symbol, interval string, c analysis.Candle) scraper.CandleMessage {
	openTime := scraper.UnixToRFC3339(c.OpenTime)
	return scraper.CandleMessage{
		ID:          scraper.GenerateID("coinex", symbol, interval, openTime),
		Exchange:    "coinex",
		Symbol:      symbol,
		Interval:    interval,
		Open:        c.Open,
		High:        c.High,
		Low:         c.Low,
		Close:       c.Close,
		BaseVolume:  c.BaseVolume,
		QuoteVolume: c.QuoteVolume,
		OpenTime:    openTime,
	}
}
