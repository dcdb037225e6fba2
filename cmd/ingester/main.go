package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dewebdes/antra/configs"
	"github.com/dewebdes/antra/internal/ingester"
	"github.com/dewebdes/antra/internal/scraper"
	"github.com/dewebdes/antra/internal/storage"

	"github.com/segmentio/kafka-go"
)

func newReader(cfg configs.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.Broker},
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 0,    // Important: commits are handled manually after DB insert
	})
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	appConfig := configs.AppLoad()

	store, err := storage.NewClickHouseStorage(appConfig.DBDSN)
	if err != nil {
		logger.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	cfg := ingester.Config{
		BatchSize:    appConfig.Ingester.BatchSize,
		BatchTimeout: time.Duration(appConfig.Ingester.BatchTimeoutSeconds) * time.Second,
	}

	candleReader := newReader(appConfig.KafkaCandle)
	defer candleReader.Close()
	signalReader := newReader(appConfig.KafkaSignal)
	defer signalReader.Close()
	tradeReader := newReader(appConfig.KafkaTrade)
	defer tradeReader.Close()

	loops := map[string]func(context.Context) error{
		"candle": ingester.NewCandleIngester(candleReader, store, logger, cfg).Start,
		"signal": ingester.NewSignalIngester(signalReader, store, logger, cfg).Start,
		"trade":  ingester.NewTradeIngester(tradeReader, store, logger, cfg).Start,
	}

	logger.Info("Ingester started successfully")

	err = scraper.RunWithGracefulShutdown(logger, func(ctx context.Context, wg *sync.WaitGroup) {
		for name, start := range loops {
			wg.Add(1)
			go func(name string, start func(context.Context) error) {
				defer wg.Done()
				if err := start(ctx); err != nil && ctx.Err() == nil {
					logger.Error("Ingester loop stopped with error", "loop", name, "error", err)
				}
			}(name, start)
		}
	})
	if err != nil {
		logger.Error("Ingester stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Ingester shutdown complete")
}
