package analyze

import (
	"fmt"

	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/normalize"
	"github.com/arloliu/tensorbuf/quant"
)

// Heuristic accuracy loss per precision. These are fixed ranking weights,
// not error measurements.
const (
	LossFP32  = 0.0
	LossFP16  = 0.01
	LossInt8  = 0.05
	LossUint8 = 0.08
)

// DefaultPrecisions is the set analyzed when no precision is given.
var DefaultPrecisions = []format.Precision{
	format.PrecisionFP32,
	format.PrecisionFP16,
	format.PrecisionInt8,
	format.PrecisionUint8,
}

// Estimate describes the storage cost of one precision.
type Estimate struct {
	Precision             format.Precision `json:"precision"`
	SizeBytes             int              `json:"size_bytes"`
	CompressionRatio      float64          `json:"compression_ratio"`
	EstimatedAccuracyLoss float64          `json:"estimated_accuracy_loss"`
}

// HeuristicLoss returns the fixed accuracy-loss weight of p.
func HeuristicLoss(p format.Precision) float64 {
	switch p {
	case format.PrecisionFP16:
		return LossFP16
	case format.PrecisionInt8:
		return LossInt8
	case format.PrecisionUint8:
		return LossUint8
	default:
		return LossFP32
	}
}

// Analyze normalizes input and reports one Estimate per precision, in the
// order given. With no precisions, DefaultPrecisions is used.
//
// Sizes and ratios depend only on the element count, never on the values.
func Analyze(input any, precisions ...format.Precision) ([]Estimate, error) {
	arr, err := normalize.Normalize(input)
	if err != nil {
		return nil, err
	}

	return ForCount(arr.Len(), precisions...)
}

// ForCount reports estimates for count float32 elements.
func ForCount(count int, precisions ...format.Precision) ([]Estimate, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", errs.ErrOutOfRange, count)
	}
	if len(precisions) == 0 {
		precisions = DefaultPrecisions
	}

	out := make([]Estimate, 0, len(precisions))
	for _, p := range precisions {
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPrecision, uint8(p))
		}
		out = append(out, Estimate{
			Precision:             p,
			SizeBytes:             count * p.BytesPerElement(),
			CompressionRatio:      quant.CompressionRatio(p),
			EstimatedAccuracyLoss: HeuristicLoss(p),
		})
	}

	return out, nil
}
