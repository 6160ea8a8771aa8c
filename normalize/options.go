package normalize

import (
	"fmt"

	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/internal/options"
)

// Config holds the parameters of a single Normalize call.
type Config struct {
	byteOffset int
	length     int // elements; negative means "to the end of the input"
	engine     endian.EndianEngine
}

// Option configures a Normalize call.
type Option = options.Option[*Config]

func newConfig() *Config {
	return &Config{
		length: -1,
		engine: endian.GetLittleEndianEngine(),
	}
}

// WithByteOffset sets the byte offset of the first element.
// For typed slices the offset must be a multiple of the element size.
func WithByteOffset(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("negative byte offset %d", n)
		}
		c.byteOffset = n

		return nil
	})
}

// WithLength limits the conversion to n elements.
func WithLength(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("negative length %d", n)
		}
		c.length = n

		return nil
	})
}

// WithByteOrder sets the byte order used to read a raw byte buffer.
// It has no effect on typed slices.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.NoError(func(c *Config) {
		if engine != nil {
			c.engine = engine
		}
	})
}
