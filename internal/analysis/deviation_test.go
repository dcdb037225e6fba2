package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestDeviation(t *testing.T) {
	// Recent window moves +10% (first open 1.0, last close 1.1). Historical
	// candles open where they close, so the average absolute move is zero.
	recent := testSeries(t, []testCandle{
		{time: 100, close: 1.0},
		{time: 200, close: 1.05},
		{time: 300, close: 1.1},
	})
	historical := testSeries(t, []testCandle{
		{time: 10, close: 1.0},
		{time: 20, close: 1.2},
		{time: 30, close: 0.9},
	})

	got, err := Deviation(recent, historical)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := 10.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected deviation %g, got %g", want, got)
	}
}

func TestDeviationWithHistoricalMoves(t *testing.T) {
	recent := testSeries(t, []testCandle{
		{time: 100, close: 1.0},
		{time: 200, close: 1.08},
	})
	// Build historical candles whose open differs from close: each moves
	// exactly +2% or -2%, so the average absolute move is 2%.
	candles := []Candle{
		{OpenTime: 10, Open: 1.00, Close: 1.02, High: 1.03, Low: 0.99, QuoteVolume: 1},
		{OpenTime: 20, Open: 1.00, Close: 0.98, High: 1.01, Low: 0.97, QuoteVolume: 1},
	}
	historical, err := NewSeries(candles)
	if err != nil {
		t.Fatalf("Failed to build historical series: %v", err)
	}

	got, err := Deviation(recent, historical)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := 8.0 - 2.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected deviation %g, got %g", want, got)
	}
}

func TestDeviationIdempotent(t *testing.T) {
	recent := testSeries(t, []testCandle{
		{time: 100, close: 1.0},
		{time: 200, close: 1.2},
	})
	historical := testSeries(t, []testCandle{
		{time: 10, close: 1.0},
		{time: 20, close: 1.1},
	})

	first, err := Deviation(recent, historical)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Deviation(recent, historical)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical results, got %g and %g", first, second)
	}
}

func TestDeviationEmptyWindows(t *testing.T) {
	s := testSeries(t, []testCandle{{time: 100, close: 1.0}})

	if _, err := Deviation(nil, s); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for empty recent window, got %v", err)
	}
	if _, err := Deviation(s, nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for empty historical window, got %v", err)
	}
}
