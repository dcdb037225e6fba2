package model

import "time"

// Candle is one candlestick row as read from ClickHouse.
type Candle struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Source      string    `gorm:"column:source" json:"source"`
	Symbol      string    `gorm:"column:symbol" json:"symbol"`
	Interval    string    `gorm:"column:interval" json:"interval"`
	Open        float64   `gorm:"column:open;type:Float64" json:"open"`
	High        float64   `gorm:"column:high;type:Float64" json:"high"`
	Low         float64   `gorm:"column:low;type:Float64" json:"low"`
	Close       float64   `gorm:"column:close;type:Float64" json:"close"`
	BaseVolume  float64   `gorm:"column:base_volume;type:Float64" json:"base_volume"`
	QuoteVolume float64   `gorm:"column:quote_volume;type:Float64" json:"quote_volume"`
	OpenTime    time.Time `gorm:"column:open_time" json:"open_time"`
	InsertedAt  time.Time `gorm:"column:inserted_at" json:"inserted_at"`
}

func (Candle) TableName() string {
	return "candle"
}
