package analysis

import "math"

// Deviation compares the recent window's move against the typical move of the
// historical window. It returns todayPercentChange - avgAbsPercentChange: how
// many points more extreme today's move is than the recent average absolute
// per-candle move. Both windows come from the same instrument and interval.
func Deviation(recent, historical Series) (float64, error) {
	if len(recent) == 0 || len(historical) == 0 {
		return 0, ErrInsufficientData
	}

	firstOpen := recent[0].Open
	todayChange := (recent.Last().Close - firstOpen) / firstOpen * 100

	sum := 0.0
	for _, c := range historical {
		sum += math.Abs((c.Close - c.Open) / c.Open * 100)
	}
	avgChange := sum / float64(len(historical))

	return todayChange - avgChange, nil
}
