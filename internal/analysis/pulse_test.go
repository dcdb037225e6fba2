package analysis

import (
	"errors"
	"math"
	"testing"
)

// pumpScenario builds a 300-candle 5-minute series: flat at 1.00 with volume
// 100, a volume/price surge at candle 36, a climb to 1.05 by candle 43, then
// a drift down to lastClose.
func pumpScenario(t *testing.T, lastClose float64) Series {
	t.Helper()
	candles := make([]testCandle, 300)
	for i := range candles {
		tm := int64((i + 1) * 300)
		switch {
		case i < 36:
			candles[i] = testCandle{time: tm, close: 1.00, quoteVol: 100}
		case i == 36:
			candles[i] = testCandle{time: tm, close: 1.025, quoteVol: 250}
		case i <= 43:
			// climb from 1.035 to 1.05
			candles[i] = testCandle{time: tm, close: (1035 + float64(i-37)*2.5) / 1000, quoteVol: 100}
		case i < 299:
			candles[i] = testCandle{time: tm, close: 1.01, quoteVol: 100}
		default:
			candles[i] = testCandle{time: tm, close: lastClose, quoteVol: 100}
		}
	}
	return testSeries(t, candles)
}

func TestDetectPulseRetracing(t *testing.T) {
	// Final close 1.00: drawdown from the 1.05 peak is ~4.8%, inside (3, 12].
	s := pumpScenario(t, 1.00)

	ev, err := DetectPulse(s, PulseConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ev.StartOfPump != s[36].OpenTime {
		t.Errorf("Expected pump start at candle 36 (%d), got %d", s[36].OpenTime, ev.StartOfPump)
	}
	if ev.FirstImpulse != s[37].OpenTime {
		t.Errorf("Expected first impulse at candle 37 (%d), got %d", s[37].OpenTime, ev.FirstImpulse)
	}
	if ev.Status != StatusRetracing {
		t.Errorf("Expected status %s, got %s", StatusRetracing, ev.Status)
	}
	if ev.LocalPeak != 1.05 {
		t.Errorf("Expected local peak 1.05, got %g", ev.LocalPeak)
	}
	if ev.DrawdownPercent <= 3 || ev.DrawdownPercent > 12 {
		t.Errorf("Expected drawdown in (3, 12], got %g", ev.DrawdownPercent)
	}
	if math.Abs(ev.SuggestedEntry-1.025) > 1e-9 {
		t.Errorf("Expected suggested entry 1.025, got %g", ev.SuggestedEntry)
	}
	if !ev.VolatilityOK {
		t.Error("Expected volatility index to be defined for a 300-candle series")
	}
}

func TestDetectPulseConsolidating(t *testing.T) {
	// Final close 1.04: drawdown from 1.05 is under 1%.
	s := pumpScenario(t, 1.04)

	ev, err := DetectPulse(s, PulseConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ev.Status != StatusConsolidating {
		t.Errorf("Expected status %s, got %s", StatusConsolidating, ev.Status)
	}
	if ev.DrawdownPercent > 3 {
		t.Errorf("Consolidating drawdown must be <= 3, got %g", ev.DrawdownPercent)
	}
}

func TestDetectPulseImpulseConfirmed(t *testing.T) {
	// Final close 0.90: drawdown from 1.05 is ~14.3%, above the 12% band.
	s := pumpScenario(t, 0.90)

	ev, err := DetectPulse(s, PulseConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ev.Status != StatusImpulseConfirmed {
		t.Errorf("Expected status %s, got %s", StatusImpulseConfirmed, ev.Status)
	}
	if ev.DrawdownPercent <= 12 {
		t.Errorf("Impulse-confirmed drawdown must exceed 12, got %g", ev.DrawdownPercent)
	}
}

func TestDetectPulseNoPump(t *testing.T) {
	candles := make([]testCandle, 100)
	for i := range candles {
		candles[i] = testCandle{time: int64((i + 1) * 300), close: 1.0, quoteVol: 100}
	}
	s := testSeries(t, candles)

	ev, err := DetectPulse(s, PulseConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ev.Status != StatusNoPump {
		t.Errorf("Expected status %s, got %s", StatusNoPump, ev.Status)
	}
	if ev.StartOfPump != 0 || ev.FirstImpulse != 0 {
		t.Errorf("Expected zero pump markers, got start=%d impulse=%d", ev.StartOfPump, ev.FirstImpulse)
	}
}

func TestDetectPulseShortSeriesSkipsVolatility(t *testing.T) {
	candles := make([]testCandle, 60)
	for i := range candles {
		candles[i] = testCandle{time: int64((i + 1) * 300), close: 1.0, quoteVol: 100}
	}
	s := testSeries(t, candles)

	ev, err := DetectPulse(s, PulseConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ev.VolatilityOK {
		t.Error("Expected volatility index to be undefined for a 60-candle series")
	}
}

func TestDetectPulseEmptySeries(t *testing.T) {
	_, err := DetectPulse(nil, PulseConfig{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}
