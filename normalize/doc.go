// Package normalize canonicalizes numeric input into an aligned float32 view.
//
// Every conversion in tensorbuf starts here: raw byte buffers, float64 and
// integer slices are turned into a Canonical slice of float32 values whose
// backing byte length is always a multiple of four.
//
// Accepted inputs:
//
//	[]byte                     packed float32 values (little-endian unless WithByteOrder)
//	[]float32, Canonical       returned as-is unless a sub-range is selected
//	[]float64                  narrowed to float32
//	[]int8, Uint8Values        divided by 127 and 255
//	[]int16, []uint16          divided by 32767 and 65535
//	[]int, []int32, []int64,   converted element-wise
//	[]uint32, []uint64
//
// A byte buffer whose byte offset is not a multiple of four is copied into
// freshly allocated aligned storage before it is read. The correction is
// logged at warn level and counted by MisalignedCopies; it is never an error.
//
// Normalize is pure and safe for concurrent use.
package normalize
