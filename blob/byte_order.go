package blob

import (
	"github.com/arloliu/tensorbuf/encoding"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/format"
)

// convertOrder rewrites the multi-byte elements of data from one byte order
// to another. Single-byte precisions and matching orders return data as is.
func convertOrder(data []byte, precision format.Precision, from, to endian.EndianEngine) []byte {
	if from == to {
		return data
	}

	switch precision {
	case format.PrecisionFP16:
		halves := make([]uint16, len(data)/2)
		encoding.DecodeUint16s(from, halves, data)

		return encoding.AppendUint16s(to, make([]byte, 0, len(data)), halves)
	case format.PrecisionFP32:
		values := make([]float32, len(data)/encoding.Float32Size)
		encoding.DecodeFloat32s(from, values, data)

		return encoding.AppendFloat32s(to, make([]byte, 0, len(data)), values)
	default:
		return data
	}
}
