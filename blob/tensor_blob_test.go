package blob

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/quant"
	"github.com/arloliu/tensorbuf/section"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func sampleValues(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(float64(i)*0.05)) * 3
	}

	return out
}

func TestEncodeDecode_AllPrecisionsAndCompressions(t *testing.T) {
	src := sampleValues(1000)

	for _, p := range format.Precisions {
		buf, err := quant.Quantize(src, p)
		require.NoError(t, err)

		for _, c := range allCompressions {
			for _, bigEndian := range []bool{false, true} {
				name := p.String() + "/" + c.String()
				opts := []EncoderOption{WithCompression(c)}
				if bigEndian {
					name += "/be"
					opts = append(opts, WithBigEndian())
				}

				t.Run(name, func(t *testing.T) {
					data, err := Encode(buf, opts...)
					require.NoError(t, err)

					decoded, err := Decode(data)
					require.NoError(t, err)
					require.Equal(t, p, decoded.Precision())
					require.Equal(t, c, decoded.Compression())
					require.Equal(t, len(src), decoded.Count())
					require.Equal(t, len(data), decoded.StoredSize())
					require.Equal(t, buf.Scheme, decoded.Scheme())
					require.Equal(t, buf.Data, decoded.Buffer().Data)
					require.Equal(t, bigEndian, decoded.Header().Flag.IsBigEndian())

					restored, err := quant.Dequantize(decoded.Buffer())
					require.NoError(t, err)
					want, err := quant.Dequantize(buf)
					require.NoError(t, err)
					require.Equal(t, want, restored)
				})
			}
		}
	}
}

func TestEncode_Layout(t *testing.T) {
	buf, err := quant.QuantizeInt8([]float32{0, 50, 100})
	require.NoError(t, err)

	data, err := Encode(buf)
	require.NoError(t, err)
	require.Len(t, data, section.HeaderSize+3)

	header, err := DecodeHeader(data)
	require.NoError(t, err)
	require.Equal(t, uint32(3), header.Count)
	require.Equal(t, uint32(3), header.RawSize)
	require.Equal(t, uint32(3), header.StoredSize)
	require.Equal(t, buf.Scheme.Scale, header.Scale)
	require.Equal(t, buf.Scheme.ZeroPoint, header.ZeroPoint)
	require.Equal(t, buf.Data, data[section.HeaderSize:])
}

func TestEncode_BigEndianPayload(t *testing.T) {
	buf := quant.QuantizeFP16([]float32{1.5})

	data, err := Encode(buf, WithBigEndian())
	require.NoError(t, err)
	require.Equal(t, []byte{0x3e, 0x00}, data[section.HeaderSize:])

	data, err = Encode(buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x3e}, data[section.HeaderSize:])
}

func TestEncode_Compresses(t *testing.T) {
	buf := quant.QuantizeUint8(make([]float32, 1<<14))

	plain, err := Encode(buf)
	require.NoError(t, err)
	packed, err := Encode(buf, WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	require.Less(t, len(packed), len(plain)/10)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(quant.Buffer{Data: []byte{1}, Count: 2, Scheme: quant.Scheme{Precision: format.PrecisionInt8}})
	require.ErrorIs(t, err, errs.ErrInvalidQuantizedSize)

	_, err = Encode(quant.QuantizeFP16([]float32{1}), WithCompression(format.CompressionType(9)))
	require.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	buf, err := quant.QuantizeInt8(sampleValues(64))
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		_, err := Decode(make([]byte, 10))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("truncated payload", func(t *testing.T) {
		data, err := Encode(buf)
		require.NoError(t, err)
		_, err = Decode(data[:len(data)-1])
		require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		data, err := Encode(buf)
		require.NoError(t, err)
		_, err = Decode(append(data, 0))
		require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
	})

	for _, c := range allCompressions {
		t.Run("corrupted payload/"+c.String(), func(t *testing.T) {
			data, err := Encode(buf, WithCompression(c))
			require.NoError(t, err)
			data[len(data)-1] ^= 0x01

			_, err = Decode(data)
			require.Error(t, err)
		})
	}

	t.Run("checksum", func(t *testing.T) {
		data, err := Encode(buf)
		require.NoError(t, err)
		data[section.HeaderSize] ^= 0xff

		_, err = Decode(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("magic", func(t *testing.T) {
		data, err := Encode(buf)
		require.NoError(t, err)
		data[1] = 0x00

		_, err = DecodeBuffer(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})
}

// forgedArtifact returns a header declaring rawSize int8 elements followed by
// the given payload.
func forgedArtifact(comp format.CompressionType, rawSize uint32, payload []byte) []byte {
	h := section.NewHeader(format.PrecisionInt8)
	h.Flag.SetCompression(comp)
	h.Count = rawSize
	h.RawSize = rawSize
	h.StoredSize = uint32(len(payload))
	h.Scale = 1

	return append(h.Bytes(), payload...)
}

func allocatedDuring(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)

	return after.TotalAlloc - before.TotalAlloc
}

func TestDecode_OversizedRawSize(t *testing.T) {
	const maxAlloc = 16 << 20

	t.Run("above default limit", func(t *testing.T) {
		data := forgedArtifact(format.CompressionLZ4, 3_000_000_000, []byte{1, 2, 3, 4})
		require.Len(t, data, 60)

		var err error
		alloc := allocatedDuring(func() { _, err = Decode(data) })
		require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
		require.Less(t, alloc, uint64(maxAlloc))
	})

	for _, c := range []format.CompressionType{format.CompressionZstd, format.CompressionLZ4} {
		t.Run("junk payload/"+c.String(), func(t *testing.T) {
			data := forgedArtifact(c, 512<<20, []byte{1, 2, 3, 4})

			var err error
			alloc := allocatedDuring(func() { _, err = Decode(data) })
			require.Error(t, err)
			require.Less(t, alloc, uint64(maxAlloc))
		})
	}

	t.Run("zstd frame size disagrees with header", func(t *testing.T) {
		buf := quant.QuantizeUint8(make([]float32, 256))
		valid, err := Encode(buf, WithCompression(format.CompressionZstd))
		require.NoError(t, err)
		data := forgedArtifact(format.CompressionZstd, 512<<20, valid[section.HeaderSize:])

		alloc := allocatedDuring(func() { _, err = Decode(data) })
		require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
		require.Less(t, alloc, uint64(maxAlloc))
	})
}

func TestDecode_WithMaxRawSize(t *testing.T) {
	buf := quant.QuantizeUint8(make([]float32, 100))
	data, err := Encode(buf)
	require.NoError(t, err)

	_, err = Decode(data, WithMaxRawSize(99))
	require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)

	decoded, err := DecodeBuffer(data, WithMaxRawSize(100))
	require.NoError(t, err)
	require.Equal(t, 100, decoded.Count)

	_, err = Decode(data, WithMaxRawSize(-1))
	require.Error(t, err)
}

func TestDecode_DoesNotAlias(t *testing.T) {
	buf := quant.QuantizeUint8([]float32{0.1, 0.2})

	data, err := Encode(buf)
	require.NoError(t, err)

	decoded, err := DecodeBuffer(data)
	require.NoError(t, err)
	data[section.HeaderSize] = 0xee
	require.Equal(t, buf.Data, decoded.Data)
}

func TestEncodeDecode_Empty(t *testing.T) {
	for _, c := range allCompressions {
		data, err := Encode(quant.QuantizeFP32(nil), WithCompression(c))
		require.NoError(t, err)

		decoded, err := DecodeBuffer(data)
		require.NoError(t, err)
		require.Zero(t, decoded.Count)
		require.Empty(t, decoded.Data)
	}
}
