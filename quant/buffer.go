package quant

import (
	"fmt"
	"math"

	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

// Scheme is the parameter set required to invert a quantized buffer.
//
// A zero Scale means the scale is absent. FP32 and FP16 schemes carry only
// the precision.
type Scheme struct {
	Precision format.Precision `json:"precision"`
	Scale     float64          `json:"scale,omitempty"`
	ZeroPoint float64          `json:"zero_point,omitempty"`
	Min       float64          `json:"min,omitempty"`
	Max       float64          `json:"max,omitempty"`
}

// HasScale reports whether the scheme carries a usable scale.
func (s Scheme) HasScale() bool {
	return s.Scale != 0 && !math.IsNaN(s.Scale) && !math.IsInf(s.Scale, 0)
}

// Buffer is a quantized array together with the scheme that produced it.
// The caller owns Data.
type Buffer struct {
	Data             []byte
	Count            int
	Scheme           Scheme
	CompressionRatio float64
}

// OriginalSize returns the size in bytes of the float32 data the buffer was built from.
func (b Buffer) OriginalSize() int {
	return b.Count * 4
}

// Size returns the size in bytes of the quantized data.
func (b Buffer) Size() int {
	return len(b.Data)
}

// Validate checks that the precision is known and the data length matches the element count.
func (b Buffer) Validate() error {
	bpe := b.Scheme.Precision.BytesPerElement()
	if bpe == 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidPrecision, uint8(b.Scheme.Precision))
	}
	if b.Count < 0 || len(b.Data) != b.Count*bpe {
		return fmt.Errorf("%w: %d bytes for %d %s elements",
			errs.ErrInvalidQuantizedSize, len(b.Data), b.Count, b.Scheme.Precision)
	}

	return nil
}

// CompressionRatio returns the fixed float32-to-precision size ratio, or 0
// for an unknown precision.
func CompressionRatio(p format.Precision) float64 {
	bpe := p.BytesPerElement()
	if bpe == 0 {
		return 0
	}

	return 4.0 / float64(bpe)
}

func newBuffer(data []byte, count int, scheme Scheme) Buffer {
	return Buffer{
		Data:             data,
		Count:            count,
		Scheme:           scheme,
		CompressionRatio: CompressionRatio(scheme.Precision),
	}
}
