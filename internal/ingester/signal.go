// Signal ingestion: screener signal topic -> signal table.
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

// SignalStorage defines the interface for persisting analyzer snapshots.
type SignalStorage interface {
	CreateSignals(ctx context.Context, signals []*models.Signal) error
}

// SignalIngester consumes analyzer snapshots from Kafka and writes to ClickHouse.
type SignalIngester struct {
	inner *batcher[models.Signal]
}

// NewSignalIngester creates a new signal ingester.
func NewSignalIngester(
	reader *kafka.Reader,
	storage SignalStorage,
	logger *slog.Logger,
	cfg Config,
) *SignalIngester {
	si := &SignalIngester{}
	si.inner = &batcher[models.Signal]{
		reader: reader,
		logger: logger.With("ingester", "signal"),
		cfg:    cfg,
		parse:  parseSignalMessage,
		insert: storage.CreateSignals,
	}
	return si
}

// Start runs the signal ingestion loop until context is cancelled.
func (si *SignalIngester) Start(ctx context.Context) error {
	return si.inner.run(ctx)
}

var validStatuses = map[string]bool{
	"no-pump":           true,
	"consolidating":     true,
	"retracing":         true,
	"impulse-confirmed": true,
}

// parseSignalMessage deserializes and validates one snapshot message.
func parseSignalMessage(msg kafka.Message) (*models.Signal, error) {
	var m scraper.SignalMessage
	if err := json.Unmarshal(msg.Value, &m); err != nil {
		return nil, err
	}

	if m.ID == "" || m.Exchange == "" || m.Symbol == "" {
		return nil, fmt.Errorf("missing required fields")
	}
	if !validStatuses[m.Status] {
		return nil, fmt.Errorf("unknown status %q", m.Status)
	}
	if math.IsNaN(m.LastClose) || math.IsInf(m.LastClose, 0) ||
		math.IsNaN(m.DrawdownPercent) || math.IsInf(m.DrawdownPercent, 0) {
		return nil, fmt.Errorf("corrupted numeric data")
	}

	generatedAt, err := time.Parse(time.RFC3339, m.GeneratedAt)
	if err != nil {
		generatedAt = time.Now()
	}

	return &models.Signal{
		ID:              m.ID,
		Source:          m.Exchange,
		Symbol:          m.Symbol,
		Interval:        m.Interval,
		Status:          m.Status,
		StartOfPump:     time.Unix(m.StartOfPump, 0).UTC(),
		FirstImpulse:    time.Unix(m.FirstImpulse, 0).UTC(),
		LocalPeak:       m.LocalPeak,
		DrawdownPercent: m.DrawdownPercent,
		SuggestedEntry:  m.SuggestedEntry,
		Score:           int32(m.Score),
		Rating:          m.Rating,
		Deviation:       m.Deviation,
		RangeLow:        m.RangeLow,
		RangeHigh:       m.RangeHigh,
		FibEntry:        m.FibEntry,
		ExtTarget:       m.ExtTarget,
		AnchorLowPrice:  m.AnchorLowPrice,
		AnchorLowTime:   time.Unix(m.AnchorLowTime, 0).UTC(),
		AnchorHighPrice: m.AnchorHighPrice,
		AnchorHighTime:  time.Unix(m.AnchorHighTime, 0).UTC(),
		VolatilityIndex: m.VolatilityIndex,
		LastClose:       m.LastClose,
		GeneratedAt:     generatedAt,
		InsertedAt:      time.Now(),
	}, nil
}
