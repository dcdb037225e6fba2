// Package ingester consumes market data from Kafka and persists it to
// ClickHouse. It handles batching, retry logic, and graceful shutdown.
package ingester

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config holds ingester configuration parameters.
type Config struct {
	// BatchSize is the maximum number of rows to accumulate before flushing to DB.
	BatchSize int

	// BatchTimeout is the maximum time to wait before flushing, even if batch isn't full.
	BatchTimeout time.Duration
}

// batcher is the shared Kafka-to-ClickHouse loop. It implements
// at-least-once delivery: offsets are only committed after successful
// database insertion. Each ingested row type wraps it with its own parse
// and insert functions.
type batcher[T any] struct {
	reader *kafka.Reader
	logger *slog.Logger
	cfg    Config
	parse  func(kafka.Message) (*T, error)
	insert func(ctx context.Context, rows []*T) error
}

// run blocks until the context is cancelled. On shutdown it attempts to
// flush any remaining buffered rows.
//
// The loop:
//  1. Fetches messages from Kafka
//  2. Parses JSON into database models
//  3. Accumulates rows until the batch is full or the timeout fires
//  4. Inserts the batch to ClickHouse (with retry on failure)
//  5. Commits Kafka offsets only after successful DB insert
func (b *batcher[T]) run(ctx context.Context) error {
	b.logger.Info("Starting ingester loop", "batch_size", b.cfg.BatchSize)

	// Reusable buffers to reduce GC pressure
	batch := make([]*T, 0, b.cfg.BatchSize)
	msgs := make([]kafka.Message, 0, b.cfg.BatchSize)

	ticker := time.NewTicker(b.cfg.BatchTimeout)
	defer ticker.Stop()

	// flush writes accumulated rows to DB and commits Kafka offsets
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		// Never drop data, keep retrying until DB accepts it
		for {
			if err := b.insert(ctx, batch); err != nil {
				b.logger.Error("DB insert failed, retrying", "error", err, "count", len(batch))
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(2 * time.Second):
					continue
				}
			}
			break
		}

		// Commit Kafka offsets AFTER successful DB insert (at-least-once)
		if err := b.reader.CommitMessages(ctx, msgs...); err != nil {
			b.logger.Warn("Failed to commit offsets", "error", err)
		}

		batch = batch[:0]
		msgs = msgs[:0]
		ticker.Reset(b.cfg.BatchTimeout)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return flush()

		case <-ticker.C:
			if err := flush(); err != nil {
				return err
			}

		default:
			// Fetch with short timeout to remain responsive to ticker/shutdown
			fetchCtx, cancel := context.WithTimeout(ctx, b.cfg.BatchTimeout)
			m, err := b.reader.FetchMessage(fetchCtx)
			cancel()

			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				if errors.Is(err, context.Canceled) {
					return nil
				}
				b.logger.Error("Kafka fetch error", "error", err)
				select {
				case <-ctx.Done():
					return flush()
				case <-time.After(time.Second):
				}
				continue
			}

			row, err := b.parse(m)
			if err != nil {
				b.logger.Debug("Parse error", "error", err)
				continue
			}

			batch = append(batch, row)
			msgs = append(msgs, m)

			if len(batch) >= b.cfg.BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
}
