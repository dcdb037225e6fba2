package analysis

import "math"

// Average returns the arithmetic mean of values.
// Returns ErrEmptyInput instead of letting a 0/0 NaN leak downstream.
func Average(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// StdDev returns the population standard deviation (N denominator).
func StdDev(values []float64) (float64, error) {
	mean, err := Average(values)
	if err != nil {
		return 0, err
	}
	varianceSum := 0.0
	for _, v := range values {
		varianceSum += (v - mean) * (v - mean)
	}
	return math.Sqrt(varianceSum / float64(len(values))), nil
}

// MinMax scans the series for the lowest Low and the highest High.
func MinMax(candles Series) (min, max float64, err error) {
	if len(candles) == 0 {
		return 0, 0, ErrEmptyInput
	}
	min = math.MaxFloat64
	max = -math.MaxFloat64
	for _, c := range candles {
		if c.Low < min {
			min = c.Low
		}
		if c.High > max {
			max = c.High
		}
	}
	return min, max, nil
}
