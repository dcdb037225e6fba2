package analysis

// Rating buckets a confirmation score into a coarse label.
type Rating string

const (
	RatingWeak     Rating = "weak"
	RatingModerate Rating = "moderate"
	RatingStrong   Rating = "strong"
)

// ConfirmationScore grades a confirmed impulse on a 0-100 scale.
type ConfirmationScore struct {
	Score  int
	Rating Rating
}

const (
	postImpulseWindow = 12
	preImpulseWindow  = 36
)

// ScoreConfirmation combines fixed-point criteria into a confidence score for
// an impulse-confirmed pulse. Returns (nil, nil) for any other status: a
// missing score is absent, never a zero-filled struct.
func ScoreConfirmation(s Series, ev PulseEvent) (*ConfirmationScore, error) {
	if ev.Status != StatusImpulseConfirmed {
		return nil, nil
	}
	if ev.ImpulseIndex < 0 || ev.ImpulseIndex >= len(s) {
		return nil, ErrInsufficientData
	}

	impulseClose := s[ev.ImpulseIndex].Close
	score := 0

	// Sustained volume: the candles following the impulse keep drawing more
	// volume than the stretch before it.
	after := postWindow(s, ev.ImpulseIndex)
	before := preWindow(s, ev.ImpulseIndex)
	if len(after) > 0 && len(before) > 0 {
		avgAfter, _ := Average(quoteVolumes(after))
		avgBefore, _ := Average(quoteVolumes(before))
		if avgAfter > 1.1*avgBefore {
			score += 30
		}
	}

	if ev.DrawdownPercent < 10 {
		score += 30
	}

	// Skipped, not failed, when the series was too short for the index.
	if ev.VolatilityOK && ev.VolatilityIndex < 0.03 {
		score += 20
	}

	// Held above the impulse zone: every post-impulse close stays within 1%
	// of the impulse close.
	if len(after) > 0 {
		held := true
		for _, c := range after {
			if c.Close < 0.99*impulseClose {
				held = false
				break
			}
		}
		if held {
			score += 20
		}
	}

	return &ConfirmationScore{Score: score, Rating: ratingFor(score)}, nil
}

func ratingFor(score int) Rating {
	switch {
	case score >= 75:
		return RatingStrong
	case score >= 50:
		return RatingModerate
	default:
		return RatingWeak
	}
}

// postWindow returns up to postImpulseWindow candles following index i.
func postWindow(s Series, i int) Series {
	from := i + 1
	to := from + postImpulseWindow
	if from > len(s) {
		return nil
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

// preWindow returns up to preImpulseWindow candles preceding index i.
func preWindow(s Series, i int) Series {
	from := i - preImpulseWindow
	if from < 0 {
		from = 0
	}
	return s[from:i]
}

func quoteVolumes(s Series) []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.QuoteVolume
	}
	return out
}
