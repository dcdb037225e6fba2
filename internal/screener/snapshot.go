package screener

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dewebdes/antra/internal/analysis"
	"github.com/dewebdes/antra/internal/scraper"
)

// deviationWindow is how many trailing candles count as "recent" for the
// baseline deviation comparison.
const deviationWindow = 12

const (
	fibEntryLabel  = "61.8%"
	extTargetLabel = "127.2%"
)

// BuildSnapshot runs the full analysis pass over one series and assembles the
// wire message. Anchor and deviation are best-effort: a series too short for
// them leaves the fields zero instead of failing the symbol.
func BuildSnapshot(symbol, interval string, series analysis.Series, cfg analysis.PulseConfig, now time.Time) (scraper.SignalMessage, error) {
	event, err := analysis.DetectPulse(series, cfg)
	if err != nil {
		return scraper.SignalMessage{}, fmt.Errorf("pulse %s: %w", symbol, err)
	}

	msg := scraper.SignalMessage{
		ID: scraper.GenerateID("coinex", symbol, interval,
			strconv.FormatInt(now.Unix(), 10)),
		Exchange:        "coinex",
		Symbol:          symbol,
		Interval:        interval,
		Status:          string(event.Status),
		StartOfPump:     event.StartOfPump,
		FirstImpulse:    event.FirstImpulse,
		LocalPeak:       event.LocalPeak,
		DrawdownPercent: event.DrawdownPercent,
		LastClose:       series.Last().Close,
		GeneratedAt:     now.UTC().Format(time.RFC3339),
	}
	if event.Status != analysis.StatusNoPump {
		msg.SuggestedEntry = event.SuggestedEntry
	}
	if event.VolatilityOK {
		msg.VolatilityIndex = event.VolatilityIndex
	}

	score, err := analysis.ScoreConfirmation(series, event)
	if err != nil {
		return scraper.SignalMessage{}, fmt.Errorf("score %s: %w", symbol, err)
	}
	if score != nil {
		msg.Score = score.Score
		msg.Rating = string(score.Rating)
	}

	minPrice, maxPrice, err := analysis.MinMax(series)
	if err != nil {
		return scraper.SignalMessage{}, fmt.Errorf("range %s: %w", symbol, err)
	}
	msg.RangeLow = minPrice
	msg.RangeHigh = maxPrice
	msg.FibEntry = levelPrice(analysis.RetracementLevels(minPrice, maxPrice), fibEntryLabel)
	msg.ExtTarget = levelPrice(analysis.ExtensionLevels(minPrice, maxPrice), extTargetLabel)

	if low, err := analysis.LowestStealthAnchor(series, analysis.DefaultAnchorWindow); err == nil {
		msg.AnchorLowPrice = low.Price
		msg.AnchorLowTime = low.Timestamp
	} else if !errors.Is(err, analysis.ErrInsufficientData) {
		return scraper.SignalMessage{}, fmt.Errorf("anchor %s: %w", symbol, err)
	}
	if high, err := analysis.HighestStealthAnchor(series, analysis.DefaultAnchorWindow); err == nil {
		msg.AnchorHighPrice = high.Price
		msg.AnchorHighTime = high.Timestamp
	}

	if len(series) > deviationWindow {
		split := len(series) - deviationWindow
		dev, err := analysis.Deviation(series[split:], series[:split])
		if err != nil {
			return scraper.SignalMessage{}, fmt.Errorf("deviation %s: %w", symbol, err)
		}
		msg.Deviation = dev
	}

	return msg, nil
}

func levelPrice(levels []analysis.Level, label string) float64 {
	for _, l := range levels {
		if l.Label == label {
			return l.Price
		}
	}
	return 0
}
