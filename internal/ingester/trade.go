// Trade ingestion: websocket trade topic -> trade table.
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

// TradeStorage defines the interface for persisting trade data.
type TradeStorage interface {
	CreateTrades(ctx context.Context, trades []*models.Trade) error
}

// TradeIngester consumes trade messages from Kafka and writes to ClickHouse.
type TradeIngester struct {
	inner *batcher[models.Trade]
}

// NewTradeIngester creates a new trade ingester.
func NewTradeIngester(
	reader *kafka.Reader,
	storage TradeStorage,
	logger *slog.Logger,
	cfg Config,
) *TradeIngester {
	ti := &TradeIngester{}
	ti.inner = &batcher[models.Trade]{
		reader: reader,
		logger: logger.With("ingester", "trade"),
		cfg:    cfg,
		parse:  parseTradeMessage,
		insert: storage.CreateTrades,
	}
	return ti
}

// Start runs the trade ingestion loop until context is cancelled.
func (ti *TradeIngester) Start(ctx context.Context) error {
	return ti.inner.run(ctx)
}

// parseTradeMessage deserializes and validates one trade message.
func parseTradeMessage(msg kafka.Message) (*models.Trade, error) {
	var m scraper.TradeMessage
	if err := json.Unmarshal(msg.Value, &m); err != nil {
		return nil, err
	}

	if m.ID == "" || m.Exchange == "" || m.Symbol == "" {
		return nil, fmt.Errorf("missing required fields: id=%q exchange=%q symbol=%q", m.ID, m.Exchange, m.Symbol)
	}
	if math.IsNaN(m.Price) || math.IsInf(m.Price, 0) ||
		math.IsNaN(m.Volume) || math.IsInf(m.Volume, 0) {
		return nil, fmt.Errorf("corrupted numeric data")
	}
	if m.Price <= 0 {
		return nil, fmt.Errorf("invalid price: %v", m.Price)
	}
	if m.Volume <= 0 {
		return nil, fmt.Errorf("invalid volume: %v", m.Volume)
	}

	eventTime, err := time.Parse(time.RFC3339, m.Time)
	if err != nil {
		eventTime = time.Now()
	}

	return &models.Trade{
		TradeID:     m.ID,
		Source:      m.Exchange,
		Symbol:      m.Symbol,
		Side:        m.Side,
		Price:       m.Price,
		BaseAmount:  m.Volume,
		QuoteAmount: m.Price * m.Volume,
		EventTime:   eventTime,
		InsertedAt:  time.Now(),
	}, nil
}
