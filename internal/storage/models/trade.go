package models

import "time"

// Trade represents a single trade record in the ClickHouse database,
// normalized from the websocket feed received via Kafka.
type Trade struct {
	// TradeID is a unique identifier, generated via SHA1 hash.
	TradeID string `json:"trade_id"`

	// Source is the exchange name.
	Source string `json:"source"`

	// Symbol is the normalized trading pair.
	Symbol string `json:"symbol"`

	// Side is the trade direction: "buy" or "sell".
	Side string `json:"side"`

	// Price is the trade price in quote currency.
	Price float64 `json:"price"`

	// BaseAmount is the quantity of base currency traded.
	BaseAmount float64 `json:"base_amount"`

	// QuoteAmount is the total value in quote currency (Price * BaseAmount).
	QuoteAmount float64 `json:"quote_amount"`

	// EventTime is when the trade occurred on the exchange.
	EventTime time.Time `json:"event_time"`

	// InsertedAt is when the trade was inserted into our database.
	InsertedAt time.Time `json:"inserted_at"`
}
