package format

import (
	"fmt"
	"strings"
)

type (
	Precision       uint8
	CompressionType uint8
)

const (
	PrecisionFP32  Precision = 0x1 // PrecisionFP32 stores IEEE-754 binary32 values unchanged.
	PrecisionFP16  Precision = 0x2 // PrecisionFP16 stores IEEE-754 binary16 bit patterns.
	PrecisionInt8  Precision = 0x3 // PrecisionInt8 stores range-quantized signed bytes.
	PrecisionUint8 Precision = 0x4 // PrecisionUint8 stores [0,1] values scaled to unsigned bytes.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Precisions lists every supported precision in declaration order.
var Precisions = []Precision{PrecisionFP32, PrecisionFP16, PrecisionInt8, PrecisionUint8}

// BytesPerElement returns the storage size of one element, or 0 for an unknown precision.
func (p Precision) BytesPerElement() int {
	switch p {
	case PrecisionFP32:
		return 4
	case PrecisionFP16:
		return 2
	case PrecisionInt8, PrecisionUint8:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether p is one of the supported precisions.
func (p Precision) IsValid() bool {
	return p.BytesPerElement() != 0
}

func (p Precision) String() string {
	switch p {
	case PrecisionFP32:
		return "fp32"
	case PrecisionFP16:
		return "fp16"
	case PrecisionInt8:
		return "int8"
	case PrecisionUint8:
		return "uint8"
	default:
		return "Unknown"
	}
}

// ParsePrecision parses the case-insensitive precision name produced by Precision.String.
func ParsePrecision(s string) (Precision, error) {
	for _, p := range Precisions {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown precision %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("unknown precision %d", uint8(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(text []byte) error {
	parsed, err := ParsePrecision(string(text))
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is one of the supported compression types.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompression parses a case-insensitive compression name.
func ParseCompression(s string) (CompressionType, error) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown compression %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("unknown compression %d", uint8(c))
	}

	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionType) UnmarshalText(text []byte) error {
	parsed, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}
