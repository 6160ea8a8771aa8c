package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	offset int
	label  string
}

func withOffset(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 {
			return errors.New("offset cannot be negative")
		}
		c.offset = n

		return nil
	})
}

func withLabel(label string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.label = label
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withOffset(4), withLabel("weights"), withOffset(8))

		require.NoError(t, err)
		require.Equal(t, 8, cfg.offset)
		require.Equal(t, "weights", cfg.label)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withOffset(4), withOffset(-1), withLabel("unused"))

		require.EqualError(t, err, "offset cannot be negative")
		require.Equal(t, 4, cfg.offset)
		require.Empty(t, cfg.label)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, testConfig{}, *cfg)
	})

	t.Run("nil option is skipped", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply[*testConfig](cfg, nil, withLabel("x")))
		require.Equal(t, "x", cfg.label)
	})
}
