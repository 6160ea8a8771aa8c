package analyze

import (
	"math"

	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/internal/pool"
	"github.com/arloliu/tensorbuf/quant"
)

// ErrorStats is the measured reconstruction error of one precision.
//
// Non-finite source elements are skipped; Compared counts the rest.
type ErrorStats struct {
	Precision        format.Precision `json:"precision"`
	MaxAbsError      float64          `json:"max_abs_error"`
	MeanAbsError     float64          `json:"mean_abs_error"`
	RMSError         float64          `json:"rms_error"`
	Compared         int              `json:"compared"`
	CompressionRatio float64          `json:"compression_ratio"`
}

// Measure quantizes arr at precision, decodes it into pooled scratch space
// and compares the result with arr element by element.
func Measure(arr []float32, precision format.Precision, opts ...quant.Int8Option) (ErrorStats, error) {
	buf, err := quant.Quantize(arr, precision, opts...)
	if err != nil {
		return ErrorStats{}, err
	}

	restored, cleanup := pool.GetFloat32Slice(len(arr))
	defer cleanup()

	if err := quant.DequantizeInto(restored, buf); err != nil {
		return ErrorStats{}, err
	}

	stats := ErrorStats{Precision: precision, CompressionRatio: buf.CompressionRatio}

	var sum, sumSq float64
	for i, x := range arr {
		want := float64(x)
		if math.IsNaN(want) || math.IsInf(want, 0) {
			continue
		}

		diff := math.Abs(float64(restored[i]) - want)
		stats.MaxAbsError = max(stats.MaxAbsError, diff)
		sum += diff
		sumSq += diff * diff
		stats.Compared++
	}

	if stats.Compared > 0 {
		stats.MeanAbsError = sum / float64(stats.Compared)
		stats.RMSError = math.Sqrt(sumSq / float64(stats.Compared))
	}

	return stats, nil
}
