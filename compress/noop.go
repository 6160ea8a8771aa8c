package compress

// NoOpCompressor stores payloads unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself after checking that it is rawSize bytes long.
func (c NoOpCompressor) Decompress(data []byte, rawSize int) ([]byte, error) {
	if err := checkSize("uncompressed", len(data), rawSize); err != nil {
		return nil, err
	}

	return data, nil
}
