package models

import "time"

// Signal is one analyzer snapshot for a symbol, as persisted to ClickHouse.
// One row is written per symbol per screener cycle.
type Signal struct {
	// ID is a unique identifier: sha1 of exchange-symbol-interval-cycle time.
	ID string `json:"id"`

	// Source is the exchange name.
	Source string `json:"source"`

	// Symbol is the normalized trading pair.
	Symbol string `json:"symbol"`

	// Interval is the candle timeframe the analysis ran on.
	Interval string `json:"interval"`

	// Status is the pulse state: no-pump, consolidating, retracing or
	// impulse-confirmed.
	Status string `json:"status"`

	// StartOfPump and FirstImpulse are candle open times; zero when absent.
	StartOfPump  time.Time `json:"start_of_pump"`
	FirstImpulse time.Time `json:"first_impulse"`

	LocalPeak       float64 `json:"local_peak"`
	DrawdownPercent float64 `json:"drawdown_percent"`
	SuggestedEntry  float64 `json:"suggested_entry"`

	// Score and Rating are only meaningful for impulse-confirmed rows.
	Score  int32  `json:"score"`
	Rating string `json:"rating"`

	Deviation float64 `json:"deviation"`

	RangeLow  float64 `json:"range_low"`
	RangeHigh float64 `json:"range_high"`
	FibEntry  float64 `json:"fib_entry"`
	ExtTarget float64 `json:"ext_target"`

	AnchorLowPrice  float64   `json:"anchor_low_price"`
	AnchorLowTime   time.Time `json:"anchor_low_time"`
	AnchorHighPrice float64   `json:"anchor_high_price"`
	AnchorHighTime  time.Time `json:"anchor_high_time"`

	VolatilityIndex float64 `json:"volatility_index"`
	LastClose       float64 `json:"last_close"`

	// GeneratedAt is when the screener produced the snapshot.
	GeneratedAt time.Time `json:"generated_at"`

	// InsertedAt is when the record was inserted into our database.
	InsertedAt time.Time `json:"inserted_at"`
}
