package scraper

// Kafka message shapes shared between the producers (screener, trade feed)
// and the ingester. Everything on the wire is JSON.

// CandleMessage is one candle as published to the candle topic.
type CandleMessage struct {
	// ID is deterministic: sha1 of exchange-symbol-interval-openTime.
	ID       string  `json:"id"`
	Exchange string  `json:"exchange"`
	Symbol   string  `json:"symbol"`
	Interval string  `json:"interval"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`

	BaseVolume  float64 `json:"base_volume"`
	QuoteVolume float64 `json:"quote_volume"`

	// OpenTime is RFC3339.
	OpenTime string `json:"open_time"`
}

// TradeMessage is one trade from the live feed.
type TradeMessage struct {
	ID       string  `json:"id"`
	Exchange string  `json:"exchange"`
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Volume   float64 `json:"volume"`
	Side     string  `json:"side"`
	Time     string  `json:"time"`
}

// SignalMessage is one analyzer snapshot for a symbol, published to the
// signal topic after each screener cycle.
type SignalMessage struct {
	ID       string `json:"id"`
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`

	// Status is the pulse state: no-pump, consolidating, retracing or
	// impulse-confirmed.
	Status string `json:"status"`

	StartOfPump     int64   `json:"start_of_pump,omitempty"`
	FirstImpulse    int64   `json:"first_impulse,omitempty"`
	LocalPeak       float64 `json:"local_peak,omitempty"`
	DrawdownPercent float64 `json:"drawdown_percent"`
	SuggestedEntry  float64 `json:"suggested_entry,omitempty"`

	// Score and Rating are only set for impulse-confirmed pulses.
	Score  int    `json:"score,omitempty"`
	Rating string `json:"rating,omitempty"`

	Deviation float64 `json:"deviation"`

	RangeLow  float64 `json:"range_low"`
	RangeHigh float64 `json:"range_high"`

	// FibEntry is the 61.8% retracement of the range; ExtTarget the 127.2%
	// downside extension.
	FibEntry  float64 `json:"fib_entry"`
	ExtTarget float64 `json:"ext_target"`

	AnchorLowPrice  float64 `json:"anchor_low_price,omitempty"`
	AnchorLowTime   int64   `json:"anchor_low_time,omitempty"`
	AnchorHighPrice float64 `json:"anchor_high_price,omitempty"`
	AnchorHighTime  int64   `json:"anchor_high_time,omitempty"`

	VolatilityIndex float64 `json:"volatility_index,omitempty"`
	LastClose       float64 `json:"last_close"`

	// GeneratedAt is RFC3339.
	GeneratedAt string `json:"generated_at"`
}
