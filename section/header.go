package section

import (
	"fmt"
	"math"

	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

// Header is the fixed-size header at the start of a tensor artifact. It
// carries the full quantization scheme so the payload can be dequantized
// without any side channel.
type Header struct {
	// Flag holds the magic number, byte order, precision and compression.
	Flag Flag // byte offset 0-3
	// Count is the number of elements in the payload.
	Count uint32 // byte offset 4-7
	// RawSize is the payload size before compression.
	RawSize uint32 // byte offset 8-11
	// StoredSize is the payload size as stored after the header.
	StoredSize uint32 // byte offset 12-15
	// Scale is the quantization scale, 0 when absent.
	Scale float64 // byte offset 16-23
	// ZeroPoint is the int8 zero point.
	ZeroPoint float64 // byte offset 24-31
	// Min and Max record the quantization range.
	Min float64 // byte offset 32-39
	Max float64 // byte offset 40-47
	// Checksum is the xxHash64 of the raw (uncompressed) payload.
	Checksum uint64 // byte offset 48-55
}

// NewHeader creates a little-endian, uncompressed header for precision.
func NewHeader(precision format.Precision) *Header {
	return &Header{Flag: NewFlag(precision)}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 56 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 56 bytes, flag validation
//     errors, or ErrInvalidPayloadSize if the sizes contradict the element count
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	// Options is always little-endian so the byte order can be read first
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Precision = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()

	h.Count = engine.Uint32(data[4:8])
	h.RawSize = engine.Uint32(data[8:12])
	h.StoredSize = engine.Uint32(data[12:16])
	h.Scale = math.Float64frombits(engine.Uint64(data[16:24]))
	h.ZeroPoint = math.Float64frombits(engine.Uint64(data[24:32]))
	h.Min = math.Float64frombits(engine.Uint64(data[32:40]))
	h.Max = math.Float64frombits(engine.Uint64(data[40:48]))
	h.Checksum = engine.Uint64(data[48:56])

	return h.validateSizes()
}

func (h *Header) validateSizes() error {
	want := uint64(h.Count) * uint64(h.Flag.GetPrecision().BytesPerElement())
	if uint64(h.RawSize) != want {
		return fmt.Errorf("%w: raw size %d for %d %s elements",
			errs.ErrInvalidPayloadSize, h.RawSize, h.Count, h.Flag.GetPrecision())
	}

	if !h.Flag.IsCompressed() && h.StoredSize != h.RawSize {
		return fmt.Errorf("%w: uncompressed payload stored as %d bytes, raw size %d",
			errs.ErrInvalidPayloadSize, h.StoredSize, h.RawSize)
	}

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = append(dst, byte(h.Flag.Options), byte(h.Flag.Options>>8), h.Flag.Precision, h.Flag.CompressionType)
	dst = engine.AppendUint32(dst, h.Count)
	dst = engine.AppendUint32(dst, h.RawSize)
	dst = engine.AppendUint32(dst, h.StoredSize)
	dst = engine.AppendUint64(dst, math.Float64bits(h.Scale))
	dst = engine.AppendUint64(dst, math.Float64bits(h.ZeroPoint))
	dst = engine.AppendUint64(dst, math.Float64bits(h.Min))
	dst = engine.AppendUint64(dst, math.Float64bits(h.Max))
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// ParseHeader parses a Header from the start of data.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 56 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
