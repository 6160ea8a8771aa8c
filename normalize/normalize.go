package normalize

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/arloliu/tensorbuf/encoding"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/internal/logging"
	"github.com/arloliu/tensorbuf/internal/options"
)

// Divisors used to map integer inputs into the canonical range.
const (
	Int8Max   = 127
	Uint8Max  = 255
	Int16Max  = 32767
	Uint16Max = 65535
)

var misalignedCopies atomic.Uint64

// MisalignedCopies returns how many byte buffers have been copied into aligned
// storage because their offset or address was not a multiple of four.
func MisalignedCopies() uint64 {
	return misalignedCopies.Load()
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float64
}

// Normalize converts input into a Canonical float32 slice.
//
// A nil or empty input yields an empty Canonical. Inputs of any other type
// fail with errs.ErrUnsupportedBufferType; offsets or lengths reaching past the
// input fail with errs.ErrOutOfRange.
//
// The result may alias input when input is already a tight float32 slice, or
// an aligned native-order byte buffer. Callers must not mutate input while the
// result is in use.
func Normalize(input any, opts ...Option) (Canonical, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	switch v := input.(type) {
	case nil:
		return Canonical{}, nil
	case []byte:
		return fromBytes(v, cfg)
	case Canonical:
		return fromFloat32s(v, cfg)
	case []float32:
		return fromFloat32s(v, cfg)
	case []float64:
		return convert(v, 8, 1, cfg)
	case []int8:
		return convert(v, 1, Int8Max, cfg)
	case Uint8Values:
		return convert(v, 1, Uint8Max, cfg)
	case []int16:
		return convert(v, 2, Int16Max, cfg)
	case []uint16:
		return convert(v, 2, Uint16Max, cfg)
	case []int:
		return convert(v, strconv.IntSize/8, 1, cfg)
	case []int32:
		return convert(v, 4, 1, cfg)
	case []int64:
		return convert(v, 8, 1, cfg)
	case []uint32:
		return convert(v, 4, 1, cfg)
	case []uint64:
		return convert(v, 8, 1, cfg)
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedBufferType, input)
	}
}

// fromBytes reads packed float32 values from a raw byte buffer.
func fromBytes(b []byte, cfg *Config) (Canonical, error) {
	off := cfg.byteOffset
	if off > len(b) {
		return nil, fmt.Errorf("%w: byte offset %d beyond %d-byte buffer", errs.ErrOutOfRange, off, len(b))
	}

	avail := (len(b) - off) / encoding.Float32Size
	n := cfg.length
	if n < 0 {
		n = avail
		if rem := (len(b) - off) % encoding.Float32Size; rem != 0 {
			logging.Logger().Debug("trailing bytes ignored; use Uint8Values for numeric uint8 data",
				"trailing_bytes", rem,
				"byte_offset", off,
				"byte_length", len(b),
			)
		}
	}
	if n > avail {
		return nil, fmt.Errorf("%w: %d float32 elements at byte offset %d exceed %d-byte buffer",
			errs.ErrOutOfRange, n, off, len(b))
	}
	if n == 0 {
		return Canonical{}, nil
	}

	window := b[off : off+n*encoding.Float32Size]
	native := endian.CompareNativeEndian(cfg.engine)

	if off%encoding.Float32Size != 0 || !encoding.IsAligned(window, encoding.Float32Size) {
		misalignedCopies.Add(1)
		logging.Logger().Warn("misaligned buffer copied to aligned storage",
			"error", errs.ErrMisalignedBuffer,
			"byte_offset", off,
			"length", n,
			"byte_length", len(b),
		)

		out := make(Canonical, n)
		if native {
			copy(encoding.Float32sAsBytes(out), window)
		} else {
			encoding.DecodeFloat32s(cfg.engine, out, window)
		}

		return out, nil
	}

	if native {
		view, _ := encoding.BytesAsFloat32s(window)
		return Canonical(view), nil
	}

	out := make(Canonical, n)
	encoding.DecodeFloat32s(cfg.engine, out, window)

	return out, nil
}

// fromFloat32s returns src unchanged, or a tight copy when a sub-range is selected.
func fromFloat32s(src []float32, cfg *Config) (Canonical, error) {
	start, n, err := selectRange(len(src), encoding.Float32Size, cfg, src)
	if err != nil {
		return nil, err
	}
	if start == 0 && n == len(src) {
		if src == nil {
			return Canonical{}, nil
		}

		return Canonical(src), nil
	}

	out := make(Canonical, n)
	copy(out, src[start:start+n])

	return out, nil
}

// convert maps each element to float32(x / divisor).
func convert[T number](src []T, elemSize int, divisor float64, cfg *Config) (Canonical, error) {
	start, n, err := selectRange(len(src), elemSize, cfg, src)
	if err != nil {
		return nil, err
	}

	out := make(Canonical, n)
	if divisor == 1 {
		for i, v := range src[start : start+n] {
			out[i] = float32(v)
		}

		return out, nil
	}

	for i, v := range src[start : start+n] {
		out[i] = float32(float64(v) / divisor)
	}

	return out, nil
}

// selectRange translates the configured byte offset and length into an
// element range of a typed slice.
func selectRange(total, elemSize int, cfg *Config, input any) (int, int, error) {
	if cfg.byteOffset%elemSize != 0 {
		return 0, 0, fmt.Errorf("%w: byte offset %d is not a multiple of %d for %T",
			errs.ErrMisalignedBuffer, cfg.byteOffset, elemSize, input)
	}

	start := cfg.byteOffset / elemSize
	if start > total {
		return 0, 0, fmt.Errorf("%w: byte offset %d beyond %T of length %d",
			errs.ErrOutOfRange, cfg.byteOffset, input, total)
	}

	n := cfg.length
	if n < 0 {
		n = total - start
	}
	if start+n > total {
		return 0, 0, fmt.Errorf("%w: %d elements from index %d exceed %T of length %d",
			errs.ErrOutOfRange, n, start, input, total)
	}

	return start, n, nil
}
