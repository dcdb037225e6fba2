// Candle ingestion: screener candle topic -> candle table.
package ingester

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dewebdes/antra/internal/scraper"
	"github.com/dewebdes/antra/internal/storage/models"

	"github.com/segmentio/kafka-go"
)

// CandleStorage defines the interface for persisting candle data.
type CandleStorage interface {
	CreateCandles(ctx context.Context, candles []*models.Candle) error
}

// CandleIngester consumes candle messages from Kafka and writes to ClickHouse.
type CandleIngester struct {
	inner *batcher[models.Candle]
}

// NewCandleIngester creates a new candle ingester.
func NewCandleIngester(
	reader *kafka.Reader,
	storage CandleStorage,
	logger *slog.Logger,
	cfg Config,
) *CandleIngester {
	ci := &CandleIngester{}
	ci.inner = &batcher[models.Candle]{
		reader: reader,
		logger: logger.With("ingester", "candle"),
		cfg:    cfg,
		parse:  parseCandleMessage,
		insert: storage.CreateCandles,
	}
	return ci
}

// Start runs the candle ingestion loop until context is cancelled.
func (ci *CandleIngester) Start(ctx context.Context) error {
	return ci.inner.run(ctx)
}

// parseCandleMessage deserializes and validates one candle message.
func parseCandleMessage(msg kafka.Message) (*models.Candle, error) {
	var m scraper.CandleMessage
	if err := json.Unmarshal(msg.Value, &m); err != nil {
		return nil, err
	}

	if m.ID == "" || m.Exchange == "" || m.Symbol == "" || m.Interval == "" {
		return nil, fmt.Errorf("missing required fields")
	}

	// NaN/Inf indicates corrupted data
	for _, v := range []float64{m.Open, m.High, m.Low, m.Close, m.BaseVolume, m.QuoteVolume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("corrupted numeric data")
		}
	}
	if m.High < m.Low {
		return nil, fmt.Errorf("invalid candle: high < low")
	}

	openTime, err := time.Parse(time.RFC3339, m.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid open_time %q: %w", m.OpenTime, err)
	}

	return &models.Candle{
		ID:          m.ID,
		Source:      m.Exchange,
		Symbol:      m.Symbol,
		Interval:    m.Interval,
		Open:        m.Open,
		High:        m.High,
		Low:         m.Low,
		Close:       m.Close,
		BaseVolume:  m.BaseVolume,
		QuoteVolume: m.QuoteVolume,
		OpenTime:    openTime,
		InsertedAt:  time.Now(),
	}, nil
}
