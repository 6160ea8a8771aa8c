package section

import (
	"fmt"

	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

// Flag is the packed first four bytes of the artifact header.
type Flag struct {
	// Options is a packed field, always stored little-endian.
	// Bit 0 is set when the payload is compressed.
	// Bit 1 is the endianness of the remaining header fields and of the
	// payload elements, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved and must be 0.
	// Bits 4-15 hold the magic number 0xEC10.
	Options uint16

	// Precision is the format.Precision of the payload elements.
	Precision uint8
	// CompressionType is the format.CompressionType applied to the payload.
	CompressionType uint8
}

// NewFlag creates a little-endian, uncompressed flag for precision.
func NewFlag(precision format.Precision) Flag {
	flag := Flag{
		Options:         MagicTensorV1Opt,
		Precision:       uint8(precision),
		CompressionType: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()

	return flag
}

// IsCompressed returns whether the payload is compressed.
func (f Flag) IsCompressed() bool {
	return (f.Options & CompressedMask) != 0
}

// GetPrecision returns the payload precision.
func (f Flag) GetPrecision() format.Precision {
	return format.Precision(f.Precision)
}

// Compression returns the payload compression type.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the compression type and keeps the compressed bit in step.
func (f *Flag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
	if compression != format.CompressionNone {
		f.Options |= CompressedMask
	} else {
		f.Options &^= CompressedMask
	}
}

// IsLittleEndian returns whether the data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicTensorV1Opt
}

// Validate checks the magic number, reserved bits, precision and compression.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set in 0x%04x", errs.ErrInvalidHeaderFlags, f.Options)
	}

	if !f.GetPrecision().IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidPrecision, f.Precision)
	}

	compression := f.Compression()
	if !compression.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, f.CompressionType)
	}

	if f.IsCompressed() != (compression != format.CompressionNone) {
		return fmt.Errorf("%w: compressed bit disagrees with %s", errs.ErrInvalidHeaderFlags, compression)
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
