package analyze

import (
	"fmt"
	"strings"

	"github.com/arloliu/tensorbuf/format"
)

// Hint states what a caller wants to optimize for.
type Hint uint8

const (
	HintStorage     Hint = iota + 1 // smallest footprint
	HintPrecision                   // lowest heuristic loss
	HintPerformance                 // fp16 when available
)

func (h Hint) String() string {
	switch h {
	case HintStorage:
		return "storage"
	case HintPrecision:
		return "precision"
	case HintPerformance:
		return "performance"
	default:
		return "Unknown"
	}
}

// ParseHint parses a case-insensitive hint name.
func ParseHint(s string) (Hint, error) {
	for _, h := range []Hint{HintStorage, HintPrecision, HintPerformance} {
		if strings.EqualFold(s, h.String()) {
			return h, nil
		}
	}

	return 0, fmt.Errorf("unknown hint %q", s)
}

// Recommend picks one estimate for hint. Ties go to the estimate listed
// first. It returns false when estimates is empty.
//
// HintPerformance prefers fp16 as the balance between size and accuracy and
// falls back to the lowest-loss estimate when fp16 was not analyzed.
func Recommend(estimates []Estimate, hint Hint) (Estimate, bool) {
	if len(estimates) == 0 {
		return Estimate{}, false
	}

	switch hint {
	case HintStorage:
		return pick(estimates, func(a, b Estimate) bool { return a.SizeBytes < b.SizeBytes }), true
	case HintPerformance:
		for _, e := range estimates {
			if e.Precision == format.PrecisionFP16 {
				return e, true
			}
		}
	}

	return pick(estimates, func(a, b Estimate) bool {
		return a.EstimatedAccuracyLoss < b.EstimatedAccuracyLoss
	}), true
}

func pick(estimates []Estimate, better func(a, b Estimate) bool) Estimate {
	best := estimates[0]
	for _, e := range estimates[1:] {
		if better(e, best) {
			best = e
		}
	}

	return best
}
