package screener

import (
	"math"
	"testing"
	"time"

	"github.com/dewebdes/antra/internal/analysis"
)

const testStep = int64(300)

// mkSeries builds a valid series with open = close, high/low 1% around it.
func mkSeries(t *testing.T, closes, quoteVols []float64) analysis.Series {
	t.Helper()
	if len(closes) != len(quoteVols) {
		t.Fatalf("closes/vols length mismatch: %d vs %d", len(closes), len(quoteVols))
	}

	candles := make([]analysis.Candle, len(closes))
	for i, c := range closes {
		candles[i] = analysis.Candle{
			OpenTime:    1700000000 + int64(i)*testStep,
			Open:        c,
			High:        c * 1.01,
			Low:         c * 0.99,
			Close:       c,
			BaseVolume:  quoteVols[i] / c,
			QuoteVolume: quoteVols[i],
		}
	}

	series, err := analysis.NewSeries(candles)
	if err != nil {
		t.Fatalf("test series invalid: %v", err)
	}
	return series
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestBuildSnapshotQuietMarket(t *testing.T) {
	series := mkSeries(t, repeat(1.0, 60), repeat(100, 60))
	now := time.Unix(1700100000, 0)

	msg, err := BuildSnapshot("BTC/USDT", "5m0s", series, analysis.PulseConfig{}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Status != string(analysis.StatusNoPump) {
		t.Errorf("status = %q, want no-pump", msg.Status)
	}
	if msg.SuggestedEntry != 0 {
		t.Errorf("quiet market should carry no suggested entry, got %v", msg.SuggestedEntry)
	}
	if msg.Score != 0 || msg.Rating != "" {
		t.Errorf("quiet market should carry no score, got %d/%q", msg.Score, msg.Rating)
	}

	approx(t, "range low", msg.RangeLow, 0.99)
	approx(t, "range high", msg.RangeHigh, 1.01)
	diff := msg.RangeHigh - msg.RangeLow
	approx(t, "fib entry", msg.FibEntry, msg.RangeHigh-0.618*diff)
	approx(t, "ext target", msg.ExtTarget, msg.RangeLow-1.272*diff)

	// All volumes tie, so the anchor is the earliest candle.
	if msg.AnchorLowTime != series[0].OpenTime {
		t.Errorf("anchor low time = %d, want %d", msg.AnchorLowTime, series[0].OpenTime)
	}
	approx(t, "deviation", msg.Deviation, 0)
	approx(t, "last close", msg.LastClose, 1.0)
	if msg.GeneratedAt != "2023-11-16T02:00:00Z" {
		t.Errorf("generated_at = %q", msg.GeneratedAt)
	}
}

func TestBuildSnapshotConfirmedPump(t *testing.T) {
	closes := repeat(1.0, 30)
	vols := repeat(100.0, 30)
	closes[10], vols[10] = 1.025, 250 // surge over the trailing baseline
	closes[11] = 1.05                 // impulse and local peak
	for i := 12; i < 30; i++ {
		closes[i] = 0.90
	}

	series := mkSeries(t, closes, vols)
	cfg := analysis.PulseConfig{VolBaselineWindow: 5, StabilityWindow: 5, StdevWindow: 10}

	msg, err := BuildSnapshot("XYZ/USDT", "5m0s", series, cfg, time.Unix(1700100000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Status != string(analysis.StatusImpulseConfirmed) {
		t.Fatalf("status = %q, want impulse-confirmed", msg.Status)
	}
	if msg.StartOfPump != series[10].OpenTime {
		t.Errorf("start of pump = %d, want %d", msg.StartOfPump, series[10].OpenTime)
	}
	if msg.FirstImpulse != series[11].OpenTime {
		t.Errorf("first impulse = %d, want %d", msg.FirstImpulse, series[11].OpenTime)
	}
	approx(t, "local peak", msg.LocalPeak, 1.05)
	approx(t, "suggested entry", msg.SuggestedEntry, 1.025)

	wantDrawdown := (1.05 - 0.90) / 1.05 * 100
	approx(t, "drawdown", msg.DrawdownPercent, wantDrawdown)

	// Only the flat-tail volatility criterion holds for this shape.
	if msg.Score != 20 || msg.Rating != string(analysis.RatingWeak) {
		t.Errorf("score = %d/%q, want 20/weak", msg.Score, msg.Rating)
	}
}

func TestBuildSnapshotEmptySeries(t *testing.T) {
	if _, err := BuildSnapshot("BTC/USDT", "5m0s", nil, analysis.PulseConfig{}, time.Now()); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestCandleMessage(t *testing.T) {
	candle := analysis.Candle{
		OpenTime:    1700000000,
		Open:        1.0,
		High:        1.02,
		Low:         0.99,
		Close:       1.01,
		BaseVolume:  99,
		QuoteVolume: 100,
	}

	msg := candleMessage("BTC/USDT", "5m0s", candle)

	if msg.OpenTime != "2023-11-14T22:13:20Z" {
		t.Errorf("open_time = %q", msg.OpenTime)
	}
	if msg.Symbol != "BTC/USDT" || msg.Exchange != "coinex" {
		t.Errorf("identity fields wrong: %q %q", msg.Symbol, msg.Exchange)
	}
	if msg.QuoteVolume != 100 || msg.Close != 1.01 {
		t.Errorf("payload fields wrong: %v %v", msg.QuoteVolume, msg.Close)
	}

	again := candleMessage("BTC/USDT", "5m0s", candle)
	if msg.ID != again.ID {
		t.Error("candle ID should be deterministic")
	}
}
