package blob

import (
	"fmt"

	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/internal/options"
	"github.com/arloliu/tensorbuf/section"
)

// EncoderConfig holds the artifact settings applied by Encode.
type EncoderConfig struct {
	header *section.Header
}

// newEncoderConfig creates a little-endian, uncompressed configuration.
func newEncoderConfig(precision format.Precision) *EncoderConfig {
	return &EncoderConfig{header: section.NewHeader(precision)}
}

// setCompression sets the payload compression type.
func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid payload compression: %v", comp)
	}
}

// setEndianess sets the byte order of the header fields and payload elements.
func (c *EncoderConfig) setEndianess(endiness endianness) {
	switch endiness {
	case bigEndianOpt:
		c.header.Flag.WithBigEndian()
	default:
		c.header.Flag.WithLittleEndian()
	}
}

// endianness represents the byte order configuration option.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// EncoderOption represents a functional option for configuring Encode.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian writes the artifact little-endian. It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(littleEndianOpt)
	})
}

// WithBigEndian writes the artifact big-endian.
// It rarely needs to be used unless interoperability with big-endian systems is required.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianess(bigEndianOpt)
	})
}

// WithCompression compresses the payload with comp.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}
