package blob

import (
	"bytes"
	"fmt"

	"github.com/arloliu/tensorbuf/compress"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/internal/hash"
	"github.com/arloliu/tensorbuf/internal/options"
	"github.com/arloliu/tensorbuf/internal/pool"
	"github.com/arloliu/tensorbuf/quant"
	"github.com/arloliu/tensorbuf/section"
)

// TensorBlob is a decoded artifact.
type TensorBlob struct {
	header  section.Header
	payload []byte // raw, little-endian
}

// Header returns a copy of the artifact header.
func (b TensorBlob) Header() section.Header {
	return b.header
}

// Precision returns the element precision.
func (b TensorBlob) Precision() format.Precision {
	return b.header.Flag.GetPrecision()
}

// Compression returns the payload compression type.
func (b TensorBlob) Compression() format.CompressionType {
	return b.header.Flag.Compression()
}

// Count returns the number of elements.
func (b TensorBlob) Count() int {
	return int(b.header.Count)
}

// StoredSize returns the size of the artifact in bytes, header included.
func (b TensorBlob) StoredSize() int {
	return section.HeaderSize + int(b.header.StoredSize)
}

// Scheme returns the quantization scheme stored in the header.
func (b TensorBlob) Scheme() quant.Scheme {
	return schemeFromHeader(&b.header)
}

// Buffer returns the quantized buffer. Its Data is the blob's payload.
func (b TensorBlob) Buffer() quant.Buffer {
	return quant.Buffer{
		Data:             b.payload,
		Count:            b.Count(),
		Scheme:           b.Scheme(),
		CompressionRatio: quant.CompressionRatio(b.Precision()),
	}
}

// Encode serializes buf into an artifact.
//
// Parameters:
//   - buf: Quantized buffer with little-endian element data
//   - opts: Optional configuration (compression, byte order)
//
// Returns:
//   - []byte: Header followed by the (optionally compressed) payload
//   - error: Validation, option or compression error
func Encode(buf quant.Buffer, opts ...EncoderOption) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if uint64(buf.Count) > section.MaxElementCount || uint64(len(buf.Data)) > section.MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d %s elements", errs.ErrElementCountTooLarge, buf.Count, buf.Scheme.Precision)
	}

	cfg := newEncoderConfig(buf.Scheme.Precision)
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header := cfg.header
	engine := header.Flag.GetEndianEngine()
	raw := convertOrder(buf.Data, buf.Scheme.Precision, endian.GetLittleEndianEngine(), engine)

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}
	stored, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", header.Flag.Compression(), err)
	}
	if uint64(len(stored)) > section.MaxPayloadSize {
		return nil, fmt.Errorf("%w: compressed payload of %d bytes", errs.ErrInvalidPayloadSize, len(stored))
	}

	header.Count = uint32(buf.Count)
	header.RawSize = uint32(len(raw))
	header.StoredSize = uint32(len(stored))
	header.Scale = buf.Scheme.Scale
	header.ZeroPoint = buf.Scheme.ZeroPoint
	header.Min = buf.Scheme.Min
	header.Max = buf.Scheme.Max
	header.Checksum = hash.Checksum(raw)

	bb := pool.GetArtifactBuffer()
	defer pool.PutArtifactBuffer(bb)

	bb.Grow(section.HeaderSize + len(stored))
	bb.B = header.AppendTo(bb.B)
	_, _ = bb.Write(stored)

	return bytes.Clone(bb.Bytes()), nil
}

// Decode parses and verifies an artifact. The returned blob never aliases data.
//
// Parameters:
//   - data: Header followed by the stored payload
//   - opts: Optional limits, see WithMaxRawSize
//
// Returns:
//   - TensorBlob: Decoded artifact with a little-endian payload
//   - error: Header errors, ErrInvalidPayloadSize, decompression errors or
//     ErrChecksumMismatch
func Decode(data []byte, opts ...DecoderOption) (TensorBlob, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return TensorBlob{}, err
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return TensorBlob{}, err
	}
	if uint64(header.RawSize) > cfg.maxRawSize {
		return TensorBlob{}, fmt.Errorf("%w: header declares %d raw bytes, limit is %d",
			errs.ErrInvalidPayloadSize, header.RawSize, cfg.maxRawSize)
	}

	stored := data[section.HeaderSize:]
	if uint64(len(stored)) != uint64(header.StoredSize) {
		return TensorBlob{}, fmt.Errorf("%w: header declares %d payload bytes, artifact has %d",
			errs.ErrInvalidPayloadSize, header.StoredSize, len(stored))
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return TensorBlob{}, err
	}
	raw, err := codec.Decompress(stored, int(header.RawSize))
	if err != nil {
		return TensorBlob{}, err
	}

	if !hash.Verify(raw, header.Checksum) {
		return TensorBlob{}, fmt.Errorf("%w: %d-byte %s payload", errs.ErrChecksumMismatch, len(raw), header.Flag.GetPrecision())
	}

	precision := header.Flag.GetPrecision()
	payload := convertOrder(raw, precision, header.Flag.GetEndianEngine(), endian.GetLittleEndianEngine())
	if header.Flag.Compression() == format.CompressionNone {
		// the payload may still alias data
		payload = bytes.Clone(payload)
	}

	return TensorBlob{header: header, payload: payload}, nil
}

// DecodeBuffer decodes an artifact straight into a quantized buffer.
func DecodeBuffer(data []byte, opts ...DecoderOption) (quant.Buffer, error) {
	b, err := Decode(data, opts...)
	if err != nil {
		return quant.Buffer{}, err
	}

	return b.Buffer(), nil
}

// DecodeHeader parses only the artifact header.
func DecodeHeader(data []byte) (section.Header, error) {
	return section.ParseHeader(data)
}

func schemeFromHeader(h *section.Header) quant.Scheme {
	return quant.Scheme{
		Precision: h.Flag.GetPrecision(),
		Scale:     h.Scale,
		ZeroPoint: h.ZeroPoint,
		Min:       h.Min,
		Max:       h.Max,
	}
}
