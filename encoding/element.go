package encoding

import (
	"math"
	"unsafe"

	"github.com/arloliu/tensorbuf/endian"
)

// Float32Size is the width in bytes of one float32 element.
const Float32Size = 4

// AppendFloat32s appends the IEEE-754 bit patterns of src to dst using engine.
func AppendFloat32s(engine endian.EndianEngine, dst []byte, src []float32) []byte {
	dst = growBytes(dst, len(src)*Float32Size)
	for _, v := range src {
		dst = engine.AppendUint32(dst, math.Float32bits(v))
	}

	return dst
}

// PutFloat32s writes src into dst. dst must hold at least 4*len(src) bytes.
func PutFloat32s(engine endian.EndianEngine, dst []byte, src []float32) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)*Float32Size-1]
	for i, v := range src {
		engine.PutUint32(dst[i*Float32Size:], math.Float32bits(v))
	}
}

// DecodeFloat32s decodes len(dst) float32 values from src.
// src must hold at least 4*len(dst) bytes.
func DecodeFloat32s(engine endian.EndianEngine, dst []float32, src []byte) {
	if len(dst) == 0 {
		return
	}
	_ = src[len(dst)*Float32Size-1]
	for i := range dst {
		dst[i] = math.Float32frombits(engine.Uint32(src[i*Float32Size:]))
	}
}

// AppendUint16s appends src to dst using engine.
func AppendUint16s(engine endian.EndianEngine, dst []byte, src []uint16) []byte {
	dst = growBytes(dst, len(src)*2)
	for _, v := range src {
		dst = engine.AppendUint16(dst, v)
	}

	return dst
}

// DecodeUint16s decodes len(dst) uint16 values from src.
func DecodeUint16s(engine endian.EndianEngine, dst []uint16, src []byte) {
	if len(dst) == 0 {
		return
	}
	_ = src[len(dst)*2-1]
	for i := range dst {
		dst[i] = engine.Uint16(src[i*2:])
	}
}

// BytesAsInt8s reinterprets a byte slice as int8 values without copying.
func BytesAsInt8s(src []byte) []int8 {
	if len(src) == 0 {
		return nil
	}

	return unsafe.Slice((*int8)(unsafe.Pointer(unsafe.SliceData(src))), len(src))
}

// Float32sAsBytes returns the native-order byte view of src without copying.
//
// The view shares memory with src and is only meaningful as little-endian
// data on little-endian hosts; use AppendFloat32s for a fixed byte order.
func Float32sAsBytes(src []float32) []byte {
	if len(src) == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(src))), len(src)*Float32Size)
}

// BytesAsFloat32s reinterprets src as native-order float32 values without copying.
//
// It returns false when the length is not a multiple of 4 or the first byte is
// not 4-byte aligned; callers must then copy into an aligned buffer.
func BytesAsFloat32s(src []byte) ([]float32, bool) {
	if len(src) == 0 {
		return nil, true
	}
	if len(src)%Float32Size != 0 || !IsAligned(src, Float32Size) {
		return nil, false
	}

	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(src))), len(src)/Float32Size), true
}

// IsAligned reports whether the first byte of b sits on an align-byte boundary.
func IsAligned(b []byte, align int) bool {
	if len(b) == 0 {
		return true
	}

	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%uintptr(align) == 0
}

func growBytes(dst []byte, n int) []byte {
	if cap(dst)-len(dst) >= n {
		return dst
	}
	grown := make([]byte, len(dst), len(dst)+n)
	copy(grown, dst)

	return grown
}
