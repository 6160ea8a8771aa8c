package quant

import (
	"fmt"

	"github.com/arloliu/tensorbuf/encoding"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

// Quantize encodes arr with the given precision. Int8 options are ignored by
// the other precisions.
func Quantize(arr []float32, precision format.Precision, opts ...Int8Option) (Buffer, error) {
	switch precision {
	case format.PrecisionFP32:
		return QuantizeFP32(arr), nil
	case format.PrecisionFP16:
		return QuantizeFP16(arr), nil
	case format.PrecisionInt8:
		return QuantizeInt8(arr, opts...)
	case format.PrecisionUint8:
		return QuantizeUint8(arr), nil
	default:
		return Buffer{}, fmt.Errorf("%w: %d", errs.ErrInvalidPrecision, uint8(precision))
	}
}

// Dequantize restores float32 values from buf using its scheme.
func Dequantize(buf Buffer) ([]float32, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	out := make([]float32, buf.Count)
	if err := DequantizeInto(out, buf); err != nil {
		return nil, err
	}

	return out, nil
}

// DequantizeInto decodes buf into dst, which must hold at least buf.Count
// elements. dst is left untouched when an error is returned.
//
// Parameters:
//   - dst: Destination slice, typically pooled scratch space
//   - buf: Quantized buffer with its scheme
//
// Returns:
//   - error: Validation error, ErrMissingScaleParameter for an int8 scheme
//     without scale, or ErrDestinationTooSmall
func DequantizeInto(dst []float32, buf Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if len(dst) < buf.Count {
		return fmt.Errorf("%w: need %d elements, have %d", errs.ErrDestinationTooSmall, buf.Count, len(dst))
	}
	dst = dst[:buf.Count]

	switch buf.Scheme.Precision {
	case format.PrecisionFP32:
		encoding.DecodeFloat32s(endian.GetLittleEndianEngine(), dst, buf.Data)
	case format.PrecisionFP16:
		decodeFP16(dst, buf.Data)
	case format.PrecisionInt8:
		if !buf.Scheme.HasScale() {
			return fmt.Errorf("%w: %s scheme for %d elements", errs.ErrMissingScaleParameter, buf.Scheme.Precision, buf.Count)
		}
		decodeInt8(dst, buf.Data, buf.Scheme)
	default:
		decodeUint8(dst, buf.Data)
	}

	return nil
}
