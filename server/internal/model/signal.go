package model

import "time"

// Signal is one analyzer snapshot row as read from ClickHouse.
type Signal struct {
	ID              string    `gorm:"column:id;primaryKey" json:"id"`
	Source          string    `gorm:"column:source" json:"source"`
	Symbol          string    `gorm:"column:symbol" json:"symbol"`
	Interval        string    `gorm:"column:interval" json:"interval"`
	Status          string    `gorm:"column:status" json:"status"`
	StartOfPump     time.Time `gorm:"column:start_of_pump" json:"start_of_pump"`
	FirstImpulse    time.Time `gorm:"column:first_impulse" json:"first_impulse"`
	LocalPeak       float64   `gorm:"column:local_peak;type:Float64" json:"local_peak"`
	DrawdownPercent float64   `gorm:"column:drawdown_percent;type:Float64" json:"drawdown_percent"`
	SuggestedEntry  float64   `gorm:"column:suggested_entry;type:Float64" json:"suggested_entry"`
	Score           int32     `gorm:"column:score" json:"score"`
	Rating          string    `gorm:"column:rating" json:"rating"`
	Deviation       float64   `gorm:"column:deviation;type:Float64" json:"deviation"`
	RangeLow        float64   `gorm:"column:range_low;type:Float64" json:"range_low"`
	RangeHigh       float64   `gorm:"column:range_high;type:Float64" json:"range_high"`
	FibEntry        float64   `gorm:"column:fib_entry;type:Float64" json:"fib_entry"`
	ExtTarget       float64   `gorm:"column:ext_target;type:Float64" json:"ext_target"`
	AnchorLowPrice  float64   `gorm:"column:anchor_low_price;type:Float64" json:"anchor_low_price"`
	AnchorLowTime   time.Time `gorm:"column:anchor_low_time" json:"anchor_low_time"`
	AnchorHighPrice float64   `gorm:"column:anchor_high_price;type:Float64" json:"anchor_high_price"`
	AnchorHighTime  time.Time `gorm:"column:anchor_high_time" json:"anchor_high_time"`
	VolatilityIndex float64   `gorm:"column:volatility_index;type:Float64" json:"volatility_index"`
	LastClose       float64   `gorm:"column:last_close;type:Float64" json:"last_close"`
	GeneratedAt     time.Time `gorm:"column:generated_at" json:"generated_at"`
	InsertedAt      time.Time `gorm:"column:inserted_at" json:"inserted_at"`
}

func (Signal) TableName() string {
	return "signal"
}
