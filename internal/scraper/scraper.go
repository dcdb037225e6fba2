// Package scraper provides the shared plumbing for exchange data collection:
// a Kafka JSON sender, retrying HTTP helpers, websocket connection handling,
// and symbol normalization.
package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

// Scraper is the interface all data collectors must implement.
type Scraper interface {
	Run(ctx context.Context) error
	Name() string
}

// Sender handles sending JSON payloads to Kafka.
type Sender struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewSender creates a new Kafka sender.
func NewSender(writer *kafka.Writer, logger *slog.Logger) *Sender {
	return &Sender{writer: writer, logger: logger}
}

// Send sends raw bytes to Kafka.
func (s *Sender) Send(ctx context.Context, data []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.writer.WriteMessages(writeCtx, kafka.Message{Value: data})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

// SendJSON serializes v and sends it.
func (s *Sender) SendJSON(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize failed: %w", err)
	}
	return s.Send(ctx, data)
}

// GenerateID creates a deterministic ID from identifying fields.
func GenerateID(parts ...string) string {
	unique := ""
	for i, p := range parts {
		if i > 0 {
			unique += "-"
		}
		unique += p
	}
	hash := sha1.Sum([]byte(unique))
	return hex.EncodeToString(hash[:])
}

// ChunkSlice splits a slice into chunks of the given size.
func ChunkSlice[T any](items []T, size int) [][]T {
	if size < 1 {
		panic("ChunkSlice: size must be greater than 0")
	}

	length := len(items)
	if length == 0 {
		return nil
	}
	chunks := make([][]T, 0, (length+size-1)/size)

	for i := 0; i < length; i += size {
		end := min(i+size, length)
		chunks = append(chunks, items[i:end])
	}

	return chunks
}

// UnixToRFC3339 converts a second-resolution timestamp to an RFC3339 string.
func UnixToRFC3339(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// RunWithGracefulShutdown runs workers until SIGINT/SIGTERM, then waits for
// them to drain.
func RunWithGracefulShutdown(
	logger *slog.Logger,
	startWorkers func(ctx context.Context, wg *sync.WaitGroup),
) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	var wg sync.WaitGroup
	startWorkers(ctx, &wg)

	logger.Info("All workers started")
	wg.Wait()

	return nil
}
