package analysis

import (
	"errors"
	"sort"
	"testing"
)

func anchorTestSeries(t *testing.T, n int) Series {
	t.Helper()
	candles := make([]testCandle, n)
	for i := range candles {
		// Closes descend, volumes ascend: the lowest-volume candles are the
		// ones with the highest closes.
		candles[i] = testCandle{
			time:     int64((i + 1) * 60),
			close:    10.0 - float64(i)*0.1,
			quoteVol: float64((i + 1) * 10),
		}
	}
	return testSeries(t, candles)
}

func TestLowestStealthAnchorPicksLowVolumeExtreme(t *testing.T) {
	s := anchorTestSeries(t, 50)

	anchor, err := LowestStealthAnchor(s, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Ceiling is the 30th smallest quote volume.
	vols := s.QuoteVolumes()
	sort.Float64s(vols)
	if anchor.VolumeCeiling != vols[29] {
		t.Errorf("Expected ceiling %g, got %g", vols[29], anchor.VolumeCeiling)
	}

	// Candles 0..29 are at or below the ceiling; the lowest close among
	// them belongs to candle 29.
	if anchor.Price != s[29].Close {
		t.Errorf("Expected anchor price %g, got %g", s[29].Close, anchor.Price)
	}
	if anchor.Timestamp != s[29].OpenTime {
		t.Errorf("Expected anchor timestamp %d, got %d", s[29].OpenTime, anchor.Timestamp)
	}
}

func TestHighestStealthAnchor(t *testing.T) {
	s := anchorTestSeries(t, 50)

	anchor, err := HighestStealthAnchor(s, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// The highest close among the low-volume candles is candle 0.
	if anchor.Price != s[0].Close {
		t.Errorf("Expected anchor price %g, got %g", s[0].Close, anchor.Price)
	}
}

func TestStealthAnchorDeterminism(t *testing.T) {
	s := anchorTestSeries(t, 60)

	first, err := LowestStealthAnchor(s, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := LowestStealthAnchor(s, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical anchors, got %+v and %+v", first, second)
	}

	// The selected candle must be among the 30 smallest positive volumes.
	vols := s.QuoteVolumes()
	sort.Float64s(vols)
	if first.VolumeCeiling > vols[29] {
		t.Errorf("Ceiling %g above the 30th smallest volume %g", first.VolumeCeiling, vols[29])
	}
}

func TestStealthAnchorIgnoresZeroVolume(t *testing.T) {
	candles := []testCandle{
		{time: 60, close: 5.0, zeroVol: true},
		{time: 120, close: 1.0, quoteVol: 10},
		{time: 180, close: 2.0, quoteVol: 20},
	}
	s := testSeries(t, candles)

	anchor, err := LowestStealthAnchor(s, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if anchor.Price != 1.0 {
		t.Errorf("Expected zero-volume candle ignored, anchor at 1.0, got %g", anchor.Price)
	}
}

func TestStealthAnchorInsufficientData(t *testing.T) {
	s := anchorTestSeries(t, 10)

	_, err := LowestStealthAnchor(s, 30)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}
