package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dewebdes/antra/configs"
	"github.com/dewebdes/antra/internal/drivers/coinex"
	"github.com/dewebdes/antra/internal/scraper"
	"github.com/dewebdes/antra/internal/screener"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

func newWriter(cfg configs.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Compression:  kafka.Zstd,
	}
}

func main() {
	appConfig := configs.AppLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	ftLogger := logrus.New()

	candleWriter := newWriter(appConfig.KafkaCandle)
	defer candleWriter.Close()
	signalWriter := newWriter(appConfig.KafkaSignal)
	defer signalWriter.Close()
	tradeWriter := newWriter(appConfig.KafkaTrade)
	defer tradeWriter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := coinex.NewClient(logger, ftLogger)

	// The trade feed subscribes to explicit markets; discover them when the
	// config leaves the list empty.
	markets := appConfig.Screener.Markets
	if len(markets) == 0 {
		discovered, err := client.Markets(ctx, "USDT")
		if err != nil {
			logger.Error("Market discovery failed", "error", err)
			os.Exit(1)
		}
		markets = discovered
	}

	workers := []scraper.Scraper{
		screener.New(client, candleWriter, signalWriter, appConfig.Screener, logger),
		coinex.NewTradeFeed(tradeWriter, markets, logger),
	}

	logger.Info("Starting screener workers",
		"candle_topic", appConfig.KafkaCandle.Topic,
		"signal_topic", appConfig.KafkaSignal.Topic,
		"trade_topic", appConfig.KafkaTrade.Topic,
		"markets", len(markets),
	)

	var wg sync.WaitGroup
	for _, s := range workers {
		wg.Add(1)
		go func(s scraper.Scraper) {
			defer wg.Done()
			logger.Info("Starting worker", "name", s.Name())
			if err := s.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Worker failed", "name", s.Name(), "error", err)
			}
		}(s)
	}

	<-ctx.Done()
	logger.Warn("Shutdown signal received, stopping workers...")

	wg.Wait()
	logger.Info("All workers stopped")
}
