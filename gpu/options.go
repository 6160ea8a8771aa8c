package gpu

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/internal/logging"
	"github.com/arloliu/tensorbuf/internal/options"
	"github.com/arloliu/tensorbuf/normalize"
	"github.com/arloliu/tensorbuf/quant"
)

// BuildConfig collects the settings of Build and BatchProcess.
type BuildConfig struct {
	label       string
	quantize    bool
	precision   format.Precision
	quantOpts   []quant.Int8Option
	inputOpts   []normalize.Option
	logger      *slog.Logger
	concurrency int
}

// BuildOption configures Build and BatchProcess.
type BuildOption = options.Option[*BuildConfig]

func newBuildConfig(opts ...BuildOption) (*BuildConfig, error) {
	cfg := &BuildConfig{
		concurrency: runtime.GOMAXPROCS(0),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = logging.Logger()
	}

	return cfg, nil
}

// WithQuantization quantizes the normalized data before upload. Int8 options
// apply only to PrecisionInt8.
func WithQuantization(precision format.Precision, opts ...quant.Int8Option) BuildOption {
	return options.New(func(c *BuildConfig) error {
		if !precision.IsValid() {
			return fmt.Errorf("invalid quantization precision %d", uint8(precision))
		}
		c.quantize = true
		c.precision = precision
		c.quantOpts = opts

		return nil
	})
}

// WithLabel sets the buffer label. BatchProcess appends the entry name to it.
func WithLabel(label string) BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.label = label
	})
}

// WithInputOptions passes normalization options, such as a byte offset, to
// every normalization performed by the build.
func WithInputOptions(opts ...normalize.Option) BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.inputOpts = append(c.inputOpts, opts...)
	})
}

// WithLogger overrides the module logger for this build.
func WithLogger(logger *slog.Logger) BuildOption {
	return options.NoError(func(c *BuildConfig) {
		c.logger = logger
	})
}

// WithConcurrency bounds the number of entries BatchProcess builds at once.
func WithConcurrency(n int) BuildOption {
	return options.New(func(c *BuildConfig) error {
		if n < 1 {
			return fmt.Errorf("invalid concurrency %d", n)
		}
		c.concurrency = n

		return nil
	})
}
