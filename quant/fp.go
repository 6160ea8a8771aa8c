package quant

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/tensorbuf/encoding"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

// QuantizeFP16 encodes arr as little-endian binary16 values.
// The reported compression ratio is 2.0.
func QuantizeFP16(arr []float32) Buffer {
	data := make([]byte, len(arr)*2)
	for i, v := range arr {
		binary.LittleEndian.PutUint16(data[i*2:], EncodeHalf(v))
	}

	return newBuffer(data, len(arr), Scheme{Precision: format.PrecisionFP16})
}

// DequantizeFP16 decodes little-endian binary16 values.
func DequantizeFP16(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of fp16 elements",
			errs.ErrInvalidQuantizedSize, len(data))
	}

	out := make([]float32, len(data)/2)
	decodeFP16(out, data)

	return out, nil
}

func decodeFP16(dst []float32, data []byte) {
	for i := range dst {
		dst[i] = DecodeHalf(binary.LittleEndian.Uint16(data[i*2:]))
	}
}

// QuantizeFP32 stores arr losslessly as little-endian float32 values.
func QuantizeFP32(arr []float32) Buffer {
	data := encoding.AppendFloat32s(endian.GetLittleEndianEngine(), make([]byte, 0, len(arr)*4), arr)
	return newBuffer(data, len(arr), Scheme{Precision: format.PrecisionFP32})
}

// DequantizeFP32 decodes little-endian float32 values.
func DequantizeFP32(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of fp32 elements",
			errs.ErrInvalidQuantizedSize, len(data))
	}

	out := make([]float32, len(data)/4)
	encoding.DecodeFloat32s(endian.GetLittleEndianEngine(), out, data)

	return out, nil
}
