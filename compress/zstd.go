package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/tensorbuf/errs"
)

// ZstdCompressor provides Zstandard compression.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrame parses the leading frame header and rejects a frame whose
// declared content size differs from rawSize, before any output is allocated.
func checkZstdFrame(data []byte, rawSize int) error {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return fmt.Errorf("zstd decompression failed: %w", err)
	}

	if h.HasFCS && h.FrameContentSize != uint64(rawSize) {
		return fmt.Errorf("%w: zstd frame declares %d bytes, want %d",
			errs.ErrInvalidPayloadSize, h.FrameContentSize, rawSize)
	}

	return nil
}
