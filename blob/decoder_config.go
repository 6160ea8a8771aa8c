package blob

import (
	"fmt"

	"github.com/arloliu/tensorbuf/internal/options"
)

// DefaultMaxRawSize is the largest decoded payload Decode accepts unless
// WithMaxRawSize overrides it.
const DefaultMaxRawSize = 1 << 30

// DecoderConfig holds the limits applied by Decode.
type DecoderConfig struct {
	maxRawSize uint64
}

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{maxRawSize: DefaultMaxRawSize}
}

// DecoderOption represents a functional option for configuring Decode.
type DecoderOption = options.Option[*DecoderConfig]

// WithMaxRawSize rejects artifacts whose header declares a decoded payload
// larger than n bytes. The check runs before any payload memory is allocated.
func WithMaxRawSize(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n < 0 {
			return fmt.Errorf("max raw size must be non-negative, got %d", n)
		}
		c.maxRawSize = uint64(n)

		return nil
	})
}
