package quant

import (
	"math"

	"github.com/arloliu/tensorbuf/format"
)

const uint8QMax = 255

// QuantizeUint8 maps arr, assumed to lie in [0,1], onto bytes in [0,255].
// Values outside [0,1] are clamped, never wrapped; NaN maps to 0.
// The reported compression ratio is 4.0.
func QuantizeUint8(arr []float32) Buffer {
	data := make([]byte, len(arr))
	for i, x := range arr {
		f := float64(x)
		if math.IsNaN(f) {
			continue
		}
		data[i] = uint8(roundHalfUp(clamp(f, 0, 1) * uint8QMax))
	}

	return newBuffer(data, len(arr), Scheme{
		Precision: format.PrecisionUint8,
		Scale:     uint8QMax,
		Min:       0,
		Max:       1,
	})
}

// DequantizeUint8 maps bytes back to [0,1] as q/255.
func DequantizeUint8(data []byte) []float32 {
	out := make([]float32, len(data))
	decodeUint8(out, data)

	return out
}

func decodeUint8(dst []float32, data []byte) {
	for i, q := range data {
		dst[i] = float32(float64(q) / uint8QMax)
	}
}
