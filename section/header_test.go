package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

func sampleHeader() *Header {
	h := NewHeader(format.PrecisionInt8)
	h.Count = 100
	h.RawSize = 100
	h.StoredSize = 100
	h.Scale = 2.54
	h.ZeroPoint = -127
	h.Min = 0
	h.Max = 100
	h.Checksum = 0x0123456789abcdef

	return h
}

func TestNewHeader(t *testing.T) {
	h := NewHeader(format.PrecisionFP16)

	require.True(t, h.Flag.IsValidMagicNumber())
	require.True(t, h.Flag.IsLittleEndian())
	require.False(t, h.Flag.IsCompressed())
	require.Equal(t, format.PrecisionFP16, h.Flag.GetPrecision())
	require.Equal(t, format.CompressionNone, h.Flag.Compression())
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		original := sampleHeader()
		original.Flag.SetCompression(format.CompressionZstd)
		original.StoredSize = 42
		if bigEndian {
			original.Flag.WithBigEndian()
		}

		data := original.Bytes()
		require.Len(t, data, HeaderSize)

		parsed := &Header{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, *original, *parsed)
	}
}

func TestHeader_Layout(t *testing.T) {
	h := sampleHeader()
	data := h.Bytes()

	require.Equal(t, []byte{0x10, 0xec}, data[0:2])
	require.Equal(t, byte(format.PrecisionInt8), data[2])
	require.Equal(t, byte(format.CompressionNone), data[3])
	require.Equal(t, []byte{100, 0, 0, 0}, data[4:8])
	require.Equal(t, math.Float64bits(-127), leUint64(data[24:32]))
	require.Equal(t, uint64(0x0123456789abcdef), leUint64(data[48:56]))

	h.Flag.WithBigEndian()
	data = h.Bytes()
	require.Equal(t, []byte{0x12, 0xec}, data[0:2], "options stay little-endian")
	require.Equal(t, []byte{0, 0, 0, 100}, data[4:8])
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v
}

func TestHeader_ParseErrors(t *testing.T) {
	t.Run("invalid size", func(t *testing.T) {
		err := (&Header{}).Parse([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

		_, err = ParseHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("invalid magic number", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[1] = 0xea
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("reserved bits", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[0] |= 0x04
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("invalid precision", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[2] = 0x9
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidPrecision)
	})

	t.Run("invalid compression", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[3] = 0x7
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("compressed bit disagrees", func(t *testing.T) {
		data := sampleHeader().Bytes()
		data[3] = byte(format.CompressionS2)
		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("raw size mismatch", func(t *testing.T) {
		h := sampleHeader()
		h.RawSize = 99
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
	})

	t.Run("stored size mismatch without compression", func(t *testing.T) {
		h := sampleHeader()
		h.StoredSize = 50
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
	})
}

func TestParseHeader_IgnoresTrailingPayload(t *testing.T) {
	data := append(sampleHeader().Bytes(), 1, 2, 3)
	h, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, uint32(100), h.Count)
}

func TestFlag_SetCompression(t *testing.T) {
	f := NewFlag(format.PrecisionFP32)
	f.SetCompression(format.CompressionLZ4)
	require.True(t, f.IsCompressed())
	require.NoError(t, f.Validate())

	f.SetCompression(format.CompressionNone)
	require.False(t, f.IsCompressed())
	require.NoError(t, f.Validate())

	f.WithBigEndian()
	require.True(t, f.IsBigEndian())
	f.WithLittleEndian()
	require.True(t, f.IsLittleEndian())
}
