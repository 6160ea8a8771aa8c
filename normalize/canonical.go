package normalize

import (
	"github.com/arloliu/tensorbuf/encoding"
	"github.com/arloliu/tensorbuf/endian"
)

// Canonical is the float32 logical view every other representation is
// normalized to. Its byte length is always 4*Len().
type Canonical []float32

// Uint8Values marks a []uint8 as numeric data to be scaled into [0,1].
// A plain []byte is treated as a raw buffer of packed float32 values.
type Uint8Values []uint8

// Len returns the number of elements.
func (c Canonical) Len() int {
	return len(c)
}

// ByteLen returns the size of the backing storage in bytes.
func (c Canonical) ByteLen() int {
	return len(c) * encoding.Float32Size
}

// Bytes returns a freshly allocated byte encoding of c in the given byte order.
func (c Canonical) Bytes(engine endian.EndianEngine) []byte {
	out := make([]byte, c.ByteLen())
	encoding.PutFloat32s(engine, out, c)

	return out
}

// AppendBytes appends the byte encoding of c to dst.
func (c Canonical) AppendBytes(dst []byte, engine endian.EndianEngine) []byte {
	return encoding.AppendFloat32s(engine, dst, c)
}
