package compress

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// int8Ramp mimics the payload of a quantized smooth signal.
func int8Ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(int8(i%255 - 127))
	}

	return out
}

// fp32Weights mimics an fp32 payload of small weights.
func fp32Weights(n int) []byte {
	out := make([]byte, 0, n*4)
	for i := range n {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(math.Sin(float64(i)*0.01))*0.1))
	}

	return out
}

func TestGetCodec(t *testing.T) {
	for _, c := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := GetCodec(c)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			decompressed, err := codec.Decompress(compressed, 0)
			require.NoError(t, err)
			require.Empty(t, decompressed)

			_, err = codec.Decompress(nil, 8)
			require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"single_byte", []byte{0x42}},
		{"fp16_pair", []byte{0x00, 0x3e, 0x80, 0xc0}},
		{"int8_ramp", int8Ramp(4096)},
		{"uint8_constant", bytes.Repeat([]byte{0x80}, 1<<16)},
		{"fp32_weights", fp32Weights(8192)},
		{"zeros", make([]byte, 1<<20)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotEmpty(t, compressed)

					decompressed, err := codec.Decompress(compressed, len(tc.data))
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_Compresses(t *testing.T) {
	data := bytes.Repeat([]byte{0x80}, 1<<16)

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/10, name)
	}
}

func TestAllCodecs_WrongRawSize(t *testing.T) {
	data := int8Ramp(1024)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(compressed, len(data)+1)
			require.Error(t, err)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{"random_bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"text_as_compressed", []byte("this is not compressed data")},
		{"corrupted_header", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data, 64)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	data := int8Ramp(8192)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, numGoroutines)

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()

					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					out, err := codec.Decompress(compressed, len(data))
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(data, out) {
						errCh <- errs.ErrChecksumMismatch
					}
				}()
			}

			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestNoOpCompressor_SharesMemory(t *testing.T) {
	data := []byte{1, 2, 3}
	codec := NewNoOpCompressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &compressed[0])

	out, err := codec.Decompress(compressed, 3)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func BenchmarkAllCodecs_Int8Payload(b *testing.B) {
	data := int8Ramp(1 << 16)

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})

		b.Run(name+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed, len(data))
			}
		})
	}
}

func TestLZ4Compressor_RawSizeBound(t *testing.T) {
	codec := NewLZ4Compressor()

	t.Run("rejects sizes the block cannot produce", func(t *testing.T) {
		_, err := codec.Decompress([]byte{1, 2, 3, 4}, 512<<20)
		require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
	})

	t.Run("accepts highly compressible payloads", func(t *testing.T) {
		zeros := make([]byte, 1<<20)
		compressed, err := codec.Compress(zeros)
		require.NoError(t, err)

		out, err := codec.Decompress(compressed, len(zeros))
		require.NoError(t, err)
		require.Equal(t, zeros, out)
	})
}

func TestZstdCompressor_FrameContentSize(t *testing.T) {
	codec := NewZstdCompressor()
	data := int8Ramp(4096)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	_, err = codec.Decompress(compressed, 1<<30)
	require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)

	_, err = codec.Decompress([]byte{1, 2, 3, 4}, 4096)
	require.Error(t, err)

	out, err := codec.Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestPreallocSize(t *testing.T) {
	require.Equal(t, 10, preallocSize(10))
	require.Equal(t, maxPrealloc, preallocSize(1<<30))
}
