package analysis

import "errors"

// Sentinel errors returned by the analyzer. All of them indicate bad or
// insufficient input rather than transient failure: callers should skip the
// instrument for the current cycle instead of retrying.
var (
	// ErrEmptyInput is returned when a statistic is requested over zero elements.
	ErrEmptyInput = errors.New("analysis: empty input")

	// ErrInsufficientData is returned when a detector requires at least N
	// candles and fewer are supplied.
	ErrInsufficientData = errors.New("analysis: insufficient data")

	// ErrInvalidCandle is returned when a candle violates the
	// low <= {open,close} <= high invariant.
	ErrInvalidCandle = errors.New("analysis: invalid candle")
)
