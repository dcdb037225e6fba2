// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// DBDSN is the ClickHouse connection string.
	DBDSN string

	// Ingester contains settings for the Kafka-to-ClickHouse ingester.
	Ingester IngesterConfig

	// KafkaCandle contains Kafka connection settings for candle data.
	KafkaCandle KafkaConfig

	// KafkaSignal contains Kafka connection settings for analyzer signals.
	KafkaSignal KafkaConfig

	// KafkaTrade contains Kafka connection settings for the live trade feed.
	KafkaTrade KafkaConfig

	// Screener contains settings for the market screener.
	Screener ScreenerConfig
}

// KafkaConfig holds Kafka connection settings for one topic.
type KafkaConfig struct {
	// Broker is the Kafka broker address (e.g., "localhost:9092").
	Broker string

	// Topic is the Kafka topic name.
	Topic string

	// GroupID is the consumer group ID for the ingester.
	GroupID string
}

// IngesterConfig holds settings for batch processing.
type IngesterConfig struct {
	// BatchSize is the maximum number of rows to accumulate before flushing.
	BatchSize int

	// BatchTimeoutSeconds is the maximum seconds to wait before flushing.
	BatchTimeoutSeconds int
}

// ScreenerConfig holds settings for the polling screener.
type ScreenerConfig struct {
	// Markets is the list of exchange market names to screen
	// (comma-separated in env). Empty means discover all USDT markets.
	Markets []string

	// PollInterval is how often each market is re-analyzed.
	PollInterval time.Duration

	// CandleInterval is the kline resolution requested from the exchange.
	CandleInterval time.Duration

	// CandleCount is how many candles each analysis cycle fetches.
	CandleCount int

	// Workers bounds the per-market analysis fan-out.
	Workers int

	// Analyzer window overrides; zero means package defaults.
	VolBaselineWindow int
	StabilityWindow   int
	StdevWindow       int
}

// getDatabaseDSN constructs the ClickHouse DSN from environment variables.
func getDatabaseDSN() string {
	dbUser := getEnv("CLICKHOUSE_USER", "user")
	dbPassword := getEnv("CLICKHOUSE_PASSWORD", "password")
	dbHost := getEnv("CLICKHOUSE_HOST", "localhost")
	dbPort := getEnv("CLICKHOUSE_TCP_PORT", "9000")
	dbName := getEnv("CLICKHOUSE_DB", "db")

	return fmt.Sprintf(
		"clickhouse://%s:%s@%s:%s/%s?dial_timeout=10s&read_timeout=20s",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

// getScreenerConfigs loads screener settings from environment.
func getScreenerConfigs() ScreenerConfig {
	marketList := getEnv("SCREENER_MARKETS", "")
	var markets []string
	if marketList != "" {
		markets = strings.Split(marketList, ",")
	}

	return ScreenerConfig{
		Markets:           markets,
		PollInterval:      time.Duration(getEnvInt("SCREENER_POLL_SECONDS", 300)) * time.Second,
		CandleInterval:    time.Duration(getEnvInt("SCREENER_CANDLE_SECONDS", 300)) * time.Second,
		CandleCount:       getEnvInt("SCREENER_CANDLE_COUNT", 300),
		Workers:           getEnvInt("SCREENER_WORKERS", 8),
		VolBaselineWindow: getEnvInt("SCREENER_VOL_BASELINE_WINDOW", 0),
		StabilityWindow:   getEnvInt("SCREENER_STABILITY_WINDOW", 0),
		StdevWindow:       getEnvInt("SCREENER_STDEV_WINDOW", 0),
	}
}

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		KafkaCandle: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_CANDLE_TOPIC", "antra_candles"),
			GroupID: getEnv("KAFKA_CANDLE_GROUP_ID", "antra-candle-consumer"),
		},
		KafkaSignal: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_SIGNAL_TOPIC", "antra_signals"),
			GroupID: getEnv("KAFKA_SIGNAL_GROUP_ID", "antra-signal-consumer"),
		},
		KafkaTrade: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_TRADE_TOPIC", "antra_trades"),
			GroupID: getEnv("KAFKA_TRADE_GROUP_ID", "antra-trade-consumer"),
		},
		DBDSN: getDatabaseDSN(),
		Ingester: IngesterConfig{
			BatchSize:           getEnvInt("BATCH_SIZE", 200),
			BatchTimeoutSeconds: getEnvInt("BATCH_TIMEOUT_SECONDS", 5),
		},
		Screener: getScreenerConfigs(),
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
