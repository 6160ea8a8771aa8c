// Package errs defines the sentinel errors shared by all tensorbuf packages.
//
// Errors returned by tensorbuf wrap one of these sentinels with context about
// the offending value (its concrete Go type, length or byte offset), so callers
// should match them with errors.Is rather than comparing messages.
package errs

import "errors"

// Input and normalization errors.
var (
	// ErrUnsupportedBufferType is returned when the input is not one of the
	// recognized buffer or numeric slice kinds.
	ErrUnsupportedBufferType = errors.New("unsupported buffer type")
	// ErrOutOfRange is returned when a byte offset or element length selects
	// bytes outside the input.
	ErrOutOfRange = errors.New("offset or length out of range")
	// ErrMisalignedBuffer marks a byte offset that is not a multiple of the
	// element size. It is recovered locally and only reported through logging.
	ErrMisalignedBuffer = errors.New("misaligned buffer")
)

// Quantization errors.
var (
	ErrMissingScaleParameter = errors.New("missing scale parameter")
	ErrInvalidPrecision      = errors.New("invalid precision")
	ErrInvalidQuantizedSize  = errors.New("quantized data size does not match element count")
)

// Buffer construction errors.
var (
	ErrDestinationTooSmall = errors.New("destination buffer too small")
	ErrBufferMapped        = errors.New("buffer is already mapped")
	ErrBufferUnmapped      = errors.New("buffer is not mapped")
	ErrNilDevice           = errors.New("nil device")
)

// Artifact (header + payload) errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid header size")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrInvalidHeaderFlags   = errors.New("invalid header flags")
	ErrInvalidCompression   = errors.New("invalid compression type")
	ErrInvalidPayloadSize   = errors.New("invalid payload size")
	ErrChecksumMismatch     = errors.New("payload checksum mismatch")
	ErrElementCountTooLarge = errors.New("element count exceeds artifact limit")
)

// Storage errors.
var (
	ErrNotFound    = errors.New("artifact not found")
	ErrInvalidName = errors.New("invalid artifact name")
)
