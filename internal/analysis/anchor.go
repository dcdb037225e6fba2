package analysis

import (
	"fmt"
	"sort"
)

// DefaultAnchorWindow is the default number of low-volume candles considered
// when picking a stealth anchor.
const DefaultAnchorWindow = 30

// StealthAnchor is a price level reached while quote volume was abnormally
// low: the market touched it without drawing volume attention, which makes it
// a support/breakout reference distinct from the raw historical low or high.
type StealthAnchor struct {
	// Price is the close of the selected candle.
	Price float64

	// Timestamp is the selected candle's open time (seconds since epoch).
	Timestamp int64

	// VolumeCeiling is the quote volume of the windowCount-th smallest
	// candle; only candles at or below it were considered.
	VolumeCeiling float64
}

// LowestStealthAnchor returns the lowest close among the windowCount
// lowest-quote-volume candles in the series. Candles with zero quote volume
// are ignored. Returns ErrInsufficientData if fewer than windowCount candles
// with positive quote volume remain.
func LowestStealthAnchor(s Series, windowCount int) (StealthAnchor, error) {
	return stealthAnchor(s, windowCount, false)
}

// HighestStealthAnchor is the mirror variant: the highest close among the
// low-volume candles.
func HighestStealthAnchor(s Series, windowCount int) (StealthAnchor, error) {
	return stealthAnchor(s, windowCount, true)
}

func stealthAnchor(s Series, windowCount int, highest bool) (StealthAnchor, error) {
	if windowCount <= 0 {
		windowCount = DefaultAnchorWindow
	}

	var active []Candle
	for _, c := range s {
		if c.QuoteVolume > 0 {
			active = append(active, c)
		}
	}
	if len(active) < windowCount {
		return StealthAnchor{}, fmt.Errorf(
			"%w: stealth anchor needs %d candles with positive quote volume, have %d",
			ErrInsufficientData, windowCount, len(active))
	}

	volumes := make([]float64, len(active))
	for i, c := range active {
		volumes[i] = c.QuoteVolume
	}
	sort.Float64s(volumes)
	ceiling := volumes[windowCount-1]

	// Scan in time order; strict comparison keeps the earliest extreme,
	// which makes the pick deterministic on ties.
	var best Candle
	found := false
	for _, c := range active {
		if c.QuoteVolume > ceiling {
			continue
		}
		if !found || (highest && c.Close > best.Close) || (!highest && c.Close < best.Close) {
			best = c
			found = true
		}
	}

	return StealthAnchor{
		Price:         best.Close,
		Timestamp:     best.OpenTime,
		VolumeCeiling: ceiling,
	}, nil
}
