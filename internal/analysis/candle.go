// Package analysis derives trading signals from candlestick series: window
// statistics, Fibonacci retracement levels, stealth low-volume anchors, pump
// detection and confirmation scoring.
//
// Everything in this package is a pure function of its inputs. No I/O, no
// hidden state, and input series are never mutated, so analyses for separate
// instruments can run in parallel without coordination.
package analysis

import (
	"fmt"
	"sort"
)

// Candle is one OHLCV record for a fixed time bucket.
type Candle struct {
	// OpenTime is the bucket start in seconds since epoch.
	OpenTime int64

	Open  float64
	High  float64
	Low   float64
	Close float64

	// BaseVolume is volume in the base currency (e.g. BTC).
	BaseVolume float64

	// QuoteVolume is volume expressed in the quote currency (e.g. USDT).
	QuoteVolume float64
}

// Validate checks the price invariant low <= {open, close} <= high.
// Prices must be positive; volumes must be non-negative.
func (c Candle) Validate() error {
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return fmt.Errorf("%w: non-positive price", ErrInvalidCandle)
	}
	if c.Low > c.High {
		return fmt.Errorf("%w: low %g > high %g", ErrInvalidCandle, c.Low, c.High)
	}
	if c.Open < c.Low || c.Open > c.High || c.Close < c.Low || c.Close > c.High {
		return fmt.Errorf("%w: open/close outside [low, high]", ErrInvalidCandle)
	}
	if c.BaseVolume < 0 || c.QuoteVolume < 0 {
		return fmt.Errorf("%w: negative volume", ErrInvalidCandle)
	}
	return nil
}

// Series is an ordered sequence of candles for one instrument and one
// interval, ascending by OpenTime with no duplicates. Build it once per data
// pull via NewSeries or SeriesFromRows and treat it as immutable.
type Series []Candle

// NewSeries validates every candle and the ordering invariant.
func NewSeries(candles []Candle) (Series, error) {
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
		if i > 0 && c.OpenTime <= candles[i-1].OpenTime {
			return nil, fmt.Errorf("%w: candle %d open time %d not after %d",
				ErrInvalidCandle, i, c.OpenTime, candles[i-1].OpenTime)
		}
	}
	return Series(candles), nil
}

// Last returns the most recent candle.
func (s Series) Last() Candle { return s[len(s)-1] }

// Closes returns the close prices in time order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

// QuoteVolumes returns the quote volumes in time order.
func (s Series) QuoteVolumes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.QuoteVolume
	}
	return out
}

// Upstream kline rows arrive as 7-element arrays in the exchange's wire
// order. Note index 2 is close and 3/4 are high/low, which differs from the
// usual OHLC ordering. This is the only place the wire order is known; the
// rest of the package sees named fields only.
const (
	rowOpenTime = iota
	rowOpen
	rowClose
	rowHigh
	rowLow
	rowBaseVolume
	rowQuoteVolume

	rowLen
)

// CandleFromRow translates one raw kline row into a validated Candle.
func CandleFromRow(row []float64) (Candle, error) {
	if len(row) < rowLen {
		return Candle{}, fmt.Errorf("%w: kline row has %d fields, want %d",
			ErrInvalidCandle, len(row), rowLen)
	}
	c := Candle{
		OpenTime:    int64(row[rowOpenTime]),
		Open:        row[rowOpen],
		Close:       row[rowClose],
		High:        row[rowHigh],
		Low:         row[rowLow],
		BaseVolume:  row[rowBaseVolume],
		QuoteVolume: row[rowQuoteVolume],
	}
	if err := c.Validate(); err != nil {
		return Candle{}, err
	}
	return c, nil
}

// SeriesFromRows translates raw kline rows into a Series. Rows are sorted by
// open time before validation since some endpoints return newest first.
func SeriesFromRows(rows [][]float64) (Series, error) {
	candles := make([]Candle, 0, len(rows))
	for i, row := range rows {
		c, err := CandleFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		candles = append(candles, c)
	}
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].OpenTime < candles[j].OpenTime
	})
	return NewSeries(candles)
}
