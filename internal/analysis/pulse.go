package analysis

// PulseStatus classifies how far a detected pump has progressed.
type PulseStatus string

const (
	StatusNoPump           PulseStatus = "no-pump"
	StatusConsolidating    PulseStatus = "consolidating"
	StatusRetracing        PulseStatus = "retracing"
	StatusImpulseConfirmed PulseStatus = "impulse-confirmed"
)

// PulseConfig holds the window sizes of the pump detector. Zero values fall
// back to the defaults.
type PulseConfig struct {
	// VolBaselineWindow is the trailing window for the volume/price baseline
	// that defines the start of a pump.
	VolBaselineWindow int

	// StabilityWindow is the window before the pump start used to capture
	// pre-pump average volume and price.
	StabilityWindow int

	// StdevWindow is the window for the volatility index.
	StdevWindow int
}

// DefaultPulseConfig returns the detector defaults (36 / 48 / 288 candles).
func DefaultPulseConfig() PulseConfig {
	return PulseConfig{
		VolBaselineWindow: 36,
		StabilityWindow:   48,
		StdevWindow:       288,
	}
}

func (c PulseConfig) withDefaults() PulseConfig {
	d := DefaultPulseConfig()
	if c.VolBaselineWindow <= 0 {
		c.VolBaselineWindow = d.VolBaselineWindow
	}
	if c.StabilityWindow <= 0 {
		c.StabilityWindow = d.StabilityWindow
	}
	if c.StdevWindow <= 0 {
		c.StdevWindow = d.StdevWindow
	}
	return c
}

// PulseEvent is the result of one pump scan. It is re-derived fresh on every
// call and never persisted across calls.
type PulseEvent struct {
	Status PulseStatus

	// StartOfPump is the open time of the first candle whose volume exceeded
	// 2x and whose close exceeded 1.02x the trailing baseline. Zero when no
	// pump was found.
	StartOfPump int64

	// FirstImpulse is the open time of the first candle after the pump start
	// whose close exceeded 1.03x the pre-pump average price. Zero when no
	// impulse was found.
	FirstImpulse int64

	// LocalPeak is the maximum close from the pump start onward.
	LocalPeak float64

	// DrawdownPercent is the retracement from the local peak close to the
	// most recent close, in percent.
	DrawdownPercent float64

	// SuggestedEntry is the pre-pump average price plus a 2.5% margin. Only
	// set when a pump was found.
	SuggestedEntry float64

	// StabilityAvgVolume and StabilityAvgPrice capture market state over the
	// stability window preceding the pump start.
	StabilityAvgVolume float64
	StabilityAvgPrice  float64

	// VolatilityIndex is the population stdev of close over the last
	// StdevWindow candles. VolatilityOK is false when the series is too
	// short, in which case rules depending on the index are skipped.
	VolatilityIndex float64
	VolatilityOK    bool

	// Candle indices backing StartOfPump and FirstImpulse, for downstream
	// scoring. -1 when absent.
	StartIndex   int
	ImpulseIndex int
}

// DetectPulse scans the series for a volume+price surge (pump start), a
// confirmed follow-through (impulse), and classifies the subsequent pullback.
// The earliest qualifying pump start wins.
func DetectPulse(s Series, cfg PulseConfig) (PulseEvent, error) {
	if len(s) == 0 {
		return PulseEvent{}, ErrEmptyInput
	}
	cfg = cfg.withDefaults()

	ev := PulseEvent{Status: StatusNoPump, StartIndex: -1, ImpulseIndex: -1}

	if len(s) >= cfg.StdevWindow {
		closes := s.Closes()
		stdev, err := StdDev(closes[len(closes)-cfg.StdevWindow:])
		if err == nil {
			ev.VolatilityIndex = stdev
			ev.VolatilityOK = true
		}
	}

	// Find the earliest pump start: volume above 2x and close above 1.02x
	// the trailing baseline.
	for i := cfg.VolBaselineWindow; i < len(s); i++ {
		var volSum, closeSum float64
		for j := i - cfg.VolBaselineWindow; j < i; j++ {
			volSum += s[j].QuoteVolume
			closeSum += s[j].Close
		}
		avgVol := volSum / float64(cfg.VolBaselineWindow)
		avgClose := closeSum / float64(cfg.VolBaselineWindow)

		if s[i].QuoteVolume > 2*avgVol && s[i].Close > 1.02*avgClose {
			ev.StartIndex = i
			ev.StartOfPump = s[i].OpenTime

			stabFrom := i - cfg.StabilityWindow
			if stabFrom < 0 {
				stabFrom = 0
			}
			var stabVol, stabPrice float64
			n := float64(i - stabFrom)
			for j := stabFrom; j < i; j++ {
				stabVol += s[j].QuoteVolume
				stabPrice += s[j].Close
			}
			if n > 0 {
				ev.StabilityAvgVolume = stabVol / n
				ev.StabilityAvgPrice = stabPrice / n
			}
			break
		}
	}

	if ev.StartIndex < 0 {
		return ev, nil
	}

	// First confirmed follow-through above the pre-pump price.
	for i := ev.StartIndex; i < len(s); i++ {
		if s[i].Close > 1.03*ev.StabilityAvgPrice {
			ev.ImpulseIndex = i
			ev.FirstImpulse = s[i].OpenTime
			break
		}
	}

	for i := ev.StartIndex; i < len(s); i++ {
		if s[i].Close > ev.LocalPeak {
			ev.LocalPeak = s[i].Close
		}
	}
	if ev.LocalPeak > 0 {
		ev.DrawdownPercent = (ev.LocalPeak - s.Last().Close) / ev.LocalPeak * 100
	}
	ev.SuggestedEntry = ev.StabilityAvgPrice * 1.025

	if ev.ImpulseIndex < 0 {
		ev.Status = StatusNoPump
		return ev, nil
	}

	switch {
	case ev.DrawdownPercent <= 3:
		ev.Status = StatusConsolidating
	case ev.DrawdownPercent <= 12:
		ev.Status = StatusRetracing
	default:
		ev.Status = StatusImpulseConfirmed
	}
	return ev, nil
}
