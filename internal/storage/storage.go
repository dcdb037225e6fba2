// Package storage provides database storage implementations for market data.
package storage

import (
	"context"
	"time"

	"github.com/dewebdes/antra/internal/storage/models"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Storage defines the interface for persisting candle, signal, and trade data.
// Implementations must be safe for concurrent use.
type Storage interface {
	// CreateCandles inserts a batch of candles into the database.
	CreateCandles(ctx context.Context, candles []*models.Candle) error

	// CreateSignals inserts a batch of analyzer snapshots into the database.
	CreateSignals(ctx context.Context, signals []*models.Signal) error

	// CreateTrades inserts a batch of trades into the database.
	CreateTrades(ctx context.Context, trades []*models.Trade) error

	// Close releases database connection resources.
	Close() error
}

// clickhouseStorage implements Storage using the native ClickHouse driver.
// Uses batch inserts for high-throughput data ingestion.
type clickhouseStorage struct {
	conn driver.Conn
}

// NewClickHouseStorage creates a new ClickHouse storage connection.
// It parses the DSN, opens a connection, and verifies connectivity with a ping.
// Returns an error if connection cannot be established within 5 seconds.
func NewClickHouseStorage(dsn string) (Storage, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}

	return &clickhouseStorage{conn: conn}, nil
}

// CreateCandles inserts candle rows using ClickHouse batch insert.
// All rows in the batch share the same inserted_at timestamp.
func (s *clickhouseStorage) CreateCandles(ctx context.Context, candles []*models.Candle) error {
	if len(candles) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO candle (
			id, source, symbol, interval,
			open, high, low, close, base_volume, quote_volume,
			open_time, inserted_at
		)
	`)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, c := range candles {
		err := batch.Append(
			c.ID,
			c.Source,
			c.Symbol,
			c.Interval,
			c.Open,
			c.High,
			c.Low,
			c.Close,
			c.BaseVolume,
			c.QuoteVolume,
			c.OpenTime,
			now,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

// CreateSignals inserts analyzer snapshot rows using ClickHouse batch insert.
func (s *clickhouseStorage) CreateSignals(ctx context.Context, signals []*models.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO signal (
			id, source, symbol, interval, status,
			start_of_pump, first_impulse, local_peak, drawdown_percent,
			suggested_entry, score, rating, deviation,
			range_low, range_high, fib_entry, ext_target,
			anchor_low_price, anchor_low_time, anchor_high_price, anchor_high_time,
			volatility_index, last_close, generated_at, inserted_at
		)
	`)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, sig := range signals {
		err := batch.Append(
			sig.ID,
			sig.Source,
			sig.Symbol,
			sig.Interval,
			sig.Status,
			sig.StartOfPump,
			sig.FirstImpulse,
			sig.LocalPeak,
			sig.DrawdownPercent,
			sig.SuggestedEntry,
			sig.Score,
			sig.Rating,
			sig.Deviation,
			sig.RangeLow,
			sig.RangeHigh,
			sig.FibEntry,
			sig.ExtTarget,
			sig.AnchorLowPrice,
			sig.AnchorLowTime,
			sig.AnchorHighPrice,
			sig.AnchorHighTime,
			sig.VolatilityIndex,
			sig.LastClose,
			sig.GeneratedAt,
			now,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

// CreateTrades inserts trades using ClickHouse batch insert.
func (s *clickhouseStorage) CreateTrades(ctx context.Context, trades []*models.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO trade (
			trade_id, source, symbol, side,
			price, base_amount, quote_amount,
			event_time, inserted_at
		)
	`)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, t := range trades {
		err := batch.Append(
			t.TradeID,
			t.Source,
			t.Symbol,
			t.Side,
			t.Price,
			t.BaseAmount,
			t.QuoteAmount,
			t.EventTime,
			now,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

// Close closes the ClickHouse connection.
func (s *clickhouseStorage) Close() error {
	return s.conn.Close()
}
