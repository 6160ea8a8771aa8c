package quant

import (
	"math"
)

// binary16 layout.
const (
	halfSignMask = 0x8000
	halfExpMask  = 0x7c00
	halfFracMask = 0x03ff
	halfNaNBit   = 0x0200
)

// float32 biased exponent thresholds for the binary16 mapping.
const (
	f32ExpZeroBelow      = 103 // below: too small even for a half subnormal
	f32ExpNormalFrom     = 113 // from here: representable as a normal half
	f32ExpSaturatesAbove = 142 // above: beyond the half range
	f32ExpSpecial        = 255 // Inf or NaN
)

// EncodeHalf converts f to an IEEE-754 binary16 bit pattern.
//
// The conversion works on the float32 bit pattern and rounds to nearest by
// adding the first shifted-out mantissa bit. Values too small for a half
// subnormal flush to a signed zero; values beyond the half range saturate to a
// signed infinity, and NaN stays NaN.
func EncodeHalf(f float32) uint16 {
	x := math.Float32bits(f)

	sign := uint16(x>>16) & halfSignMask
	mant := (x >> 12) & 0x07ff // ten mantissa bits plus the rounding bit
	exp := (x >> 23) & 0xff

	if exp < f32ExpZeroBelow {
		return sign
	}

	if exp > f32ExpSaturatesAbove {
		h := sign | halfExpMask
		if exp == f32ExpSpecial && x&0x007fffff != 0 {
			h |= halfNaNBit
		}

		return h
	}

	if exp < f32ExpNormalFrom {
		// Half subnormal: make the implicit leading bit explicit and shift it in.
		mant |= 0x0800
		return sign | uint16((mant>>(114-exp))+((mant>>(113-exp))&1))
	}

	h := sign | uint16((exp-112)<<10) | uint16(mant>>1)
	// A carry out of the mantissa correctly bumps the exponent, up to infinity.
	h += uint16(mant & 1)

	return h
}

// DecodeHalf converts an IEEE-754 binary16 bit pattern to float32.
func DecodeHalf(h uint16) float32 {
	sign := 1.0
	if h&halfSignMask != 0 {
		sign = -1.0
	}

	exp := int(h&halfExpMask) >> 10
	frac := float64(h & halfFracMask)

	switch exp {
	case 0:
		return float32(sign * math.Ldexp(frac/1024, -14))
	case 0x1f:
		if frac != 0 {
			return float32(math.NaN())
		}

		return float32(math.Inf(int(sign)))
	default:
		return float32(sign * math.Ldexp(1+frac/1024, exp-15))
	}
}
