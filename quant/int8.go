package quant

import (
	"fmt"
	"math"

	"github.com/arloliu/tensorbuf/encoding"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/internal/options"
)

// RangeEpsilon replaces a degenerate (max == min) int8 range.
const RangeEpsilon = 1e-8

// Int8 code range. The formula maps [min,max] onto [-127,127] over 254 steps.
const (
	Int8QMin   = -127
	Int8QMax   = 127
	int8QSteps = 254
)

// Int8Config holds overrides for QuantizeInt8.
type Int8Config struct {
	scale, zeroPoint, min, max             float64
	hasScale, hasZeroPoint, hasMin, hasMax bool
}

// Int8Option configures QuantizeInt8.
type Int8Option = options.Option[*Int8Config]

// WithScale fixes the scale instead of deriving 254/range.
func WithScale(scale float64) Int8Option {
	return options.New(func(c *Int8Config) error {
		if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
			return fmt.Errorf("invalid int8 scale %v", scale)
		}
		c.scale, c.hasScale = scale, true

		return nil
	})
}

// WithZeroPoint fixes the zero point instead of deriving it from the minimum.
func WithZeroPoint(zeroPoint float64) Int8Option {
	return options.New(func(c *Int8Config) error {
		if math.IsNaN(zeroPoint) || math.IsInf(zeroPoint, 0) {
			return fmt.Errorf("invalid int8 zero point %v", zeroPoint)
		}
		c.zeroPoint, c.hasZeroPoint = zeroPoint, true

		return nil
	})
}

// WithMin fixes the range minimum instead of scanning the data.
func WithMin(v float64) Int8Option {
	return options.NoError(func(c *Int8Config) {
		c.min, c.hasMin = v, true
	})
}

// WithMax fixes the range maximum instead of scanning the data.
func WithMax(v float64) Int8Option {
	return options.NoError(func(c *Int8Config) {
		c.max, c.hasMax = v, true
	})
}

// WithRange fixes both ends of the range.
func WithRange(minValue, maxValue float64) Int8Option {
	return options.New(func(c *Int8Config) error {
		if minValue > maxValue {
			return fmt.Errorf("invalid int8 range [%v, %v]", minValue, maxValue)
		}
		c.min, c.hasMin = minValue, true
		c.max, c.hasMax = maxValue, true

		return nil
	})
}

// QuantizeInt8 maps arr linearly onto signed bytes in [-127, 127].
//
// Unless overridden, min and max are the finite extremes of arr, and
//
//	scale     = 254 / max(max-min, RangeEpsilon)
//	zeroPoint = round(-min*scale - 127)
//	q         = clamp(round(x*scale + zeroPoint), -127, 127)
//
// where round breaks ties toward +Inf. NaN elements quantize to the clamped
// zero point. The reported compression ratio is 4.0, and the returned scheme
// must be kept to dequantize the data.
func QuantizeInt8(arr []float32, opts ...Int8Option) (Buffer, error) {
	cfg := &Int8Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return Buffer{}, err
	}

	lo, hi := finiteMinMax(arr)
	if cfg.hasMin {
		lo = cfg.min
	}
	if cfg.hasMax {
		hi = cfg.max
	}

	rng := math.Max(hi-lo, RangeEpsilon)

	scale := int8QSteps / rng
	if cfg.hasScale {
		scale = cfg.scale
	}

	zeroPoint := roundHalfUp(-lo*scale - Int8QMax)
	if cfg.hasZeroPoint {
		zeroPoint = cfg.zeroPoint
	}

	data := make([]byte, len(arr))
	q := encoding.BytesAsInt8s(data)
	for i, x := range arr {
		q[i] = quantizeInt8(float64(x), scale, zeroPoint)
	}

	return newBuffer(data, len(arr), Scheme{
		Precision: format.PrecisionInt8,
		Scale:     scale,
		ZeroPoint: zeroPoint,
		Min:       lo,
		Max:       hi,
	}), nil
}

// DequantizeInt8 inverts QuantizeInt8: x = (q - zeroPoint) / scale.
func DequantizeInt8(data []byte, scheme Scheme) ([]float32, error) {
	if !scheme.HasScale() {
		return nil, fmt.Errorf("%w: %s scheme for %d elements", errs.ErrMissingScaleParameter, scheme.Precision, len(data))
	}

	out := make([]float32, len(data))
	decodeInt8(out, data, scheme)

	return out, nil
}

func decodeInt8(dst []float32, data []byte, scheme Scheme) {
	for i, q := range encoding.BytesAsInt8s(data) {
		dst[i] = float32((float64(q) - scheme.ZeroPoint) / scheme.Scale)
	}
}

func quantizeInt8(x, scale, zeroPoint float64) int8 {
	v := roundHalfUp(x*scale + zeroPoint)
	if math.IsNaN(v) {
		v = zeroPoint
	}

	return int8(clamp(v, Int8QMin, Int8QMax))
}

// finiteMinMax returns the extremes of the finite elements of arr, or (0, 0)
// when there are none.
func finiteMinMax(arr []float32) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range arr {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}

	if lo > hi {
		return 0, 0
	}

	return lo, hi
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
