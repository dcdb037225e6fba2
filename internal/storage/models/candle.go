// Package models defines the rows persisted to ClickHouse.
package models

import "time"

// Candle represents a single candlestick record in the ClickHouse database.
type Candle struct {
	// ID is a unique identifier: sha1 of exchange-symbol-interval-openTime.
	ID string `json:"id"`

	// Source is the exchange name (e.g., "coinex").
	Source string `json:"source"`

	// Symbol is the normalized trading pair (e.g., "BTC/USDT").
	Symbol string `json:"symbol"`

	// Interval is the candle timeframe, e.g. "5m0s".
	Interval string `json:"interval"`

	// Open is the opening price of the candle.
	Open float64 `json:"open"`

	// High is the highest price during the candle period.
	High float64 `json:"high"`

	// Low is the lowest price during the candle period.
	Low float64 `json:"low"`

	// Close is the closing price of the candle.
	Close float64 `json:"close"`

	// BaseVolume is the traded quantity in base currency.
	BaseVolume float64 `json:"base_volume"`

	// QuoteVolume is the traded value in quote currency.
	QuoteVolume float64 `json:"quote_volume"`

	// OpenTime is when the candle opened.
	OpenTime time.Time `json:"open_time"`

	// InsertedAt is when the record was inserted into our database.
	InsertedAt time.Time `json:"inserted_at"`
}
