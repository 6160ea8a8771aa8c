package compress

import (
	"fmt"

	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

// Compressor compresses an artifact payload.
//
// Memory management:
//   - Returned slice is owned by the caller, except for the no-op codec which
//     returns its input
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores an artifact payload.
//
// rawSize is the payload size recorded in the artifact header. Decompressors
// use it to size the output buffer in one allocation and must fail when the
// decompressed data does not have exactly that length.
type Decompressor interface {
	Decompress(data []byte, rawSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
//
// Returns:
//   - Codec: Shared codec instance, safe for concurrent use
//   - error: ErrInvalidCompression for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// maxPrealloc caps the output capacity reserved up front for codecs that
// cannot bound their decompressed size from the compressed input.
const maxPrealloc = 1 << 20

// preallocSize returns the initial output capacity for a rawSize payload.
func preallocSize(rawSize int) int {
	return min(rawSize, maxPrealloc)
}

func checkSize(algorithm string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s payload decompressed to %d bytes, want %d",
			errs.ErrInvalidPayloadSize, algorithm, got, want)
	}

	return nil
}
