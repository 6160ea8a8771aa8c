package tensorbuf

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tensorbuf/analyze"
	"github.com/arloliu/tensorbuf/blob"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/gpu"
	"github.com/arloliu/tensorbuf/normalize"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize([]int8{-127, 0, 127})
	require.NoError(t, err)
	require.Equal(t, normalize.Canonical{-1, 0, 1}, got)

	_, err = Normalize("text")
	require.ErrorIs(t, err, errs.ErrUnsupportedBufferType)
}

func TestQuantizeDequantize(t *testing.T) {
	values := []float32{-1, -0.5, 0, 0.5, 1}

	for _, p := range []format.Precision{format.PrecisionFP32, format.PrecisionFP16, format.PrecisionInt8} {
		t.Run(p.String(), func(t *testing.T) {
			buf, err := Quantize(values, p)
			require.NoError(t, err)
			require.Equal(t, len(values), buf.Count)
			require.Equal(t, p, buf.Scheme.Precision)

			got, err := Dequantize(buf)
			require.NoError(t, err)
			require.InDeltaSlice(t, values, got, 0.01)
		})
	}

	_, err := Quantize(values, format.Precision(0))
	require.ErrorIs(t, err, errs.ErrInvalidPrecision)
}

func TestAnalyzeRecommend(t *testing.T) {
	estimates, err := Analyze(make([]float32, 1000))
	require.NoError(t, err)
	require.Len(t, estimates, 4)
	require.Equal(t, 4000, estimates[0].SizeBytes)

	best, ok := Recommend(estimates, analyze.HintStorage)
	require.True(t, ok)
	require.Equal(t, format.PrecisionInt8, best.Precision)

	best, ok = Recommend(estimates, analyze.HintPerformance)
	require.True(t, ok)
	require.Equal(t, format.PrecisionFP16, best.Precision)
}

func TestBuild(t *testing.T) {
	device := gpu.NewMemoryDevice()

	result, err := Build(device, []float32{1, 2, 3}, gpu.UsageStorage|gpu.UsageCopyDst,
		gpu.WithQuantization(format.PrecisionFP16),
		gpu.WithLabel("weights"),
	)
	require.NoError(t, err)
	require.Equal(t, 6, result.Buffer.Size())
	require.NotNil(t, result.Conversion)
	require.InDelta(t, 2.0, result.Conversion.CompressionRatio, 1e-9)

	batch, err := BatchBuild(device, map[string]any{
		"a": []float32{1},
		"b": []float64{1, 2},
	}, gpu.UsageStorage)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, batch.Names())
	require.Equal(t, int64(3), device.BuffersCreated())
}

func TestEncodeDecode(t *testing.T) {
	buf, err := Quantize([]float32{0.1, 0.2, 0.3, 0.4}, format.PrecisionInt8)
	require.NoError(t, err)

	data, err := Encode(buf, blob.WithCompression(format.CompressionLZ4), blob.WithBigEndian())
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, buf.Data, got.Data)
	require.Equal(t, buf.Scheme, got.Scheme)

	data[len(data)-1] ^= 0xff
	_, err = Decode(data)
	require.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var out bytes.Buffer
	SetLogger(NewTextLogger(&out, slog.LevelWarn))

	raw := make([]byte, 9)
	binary.LittleEndian.PutUint32(raw[1:], math.Float32bits(2.5))
	binary.LittleEndian.PutUint32(raw[5:], math.Float32bits(-1))

	got, err := Normalize(raw, normalize.WithByteOffset(1))
	require.NoError(t, err)
	require.Equal(t, normalize.Canonical{2.5, -1}, got)
	require.Contains(t, out.String(), "level=WARN")

	out.Reset()
	SetLogger(NewJSONLogger(&out, slog.LevelDebug))
	Logger().Debug("probe", slog.Int("n", 1))
	require.Contains(t, out.String(), `"msg":"probe"`)
	require.Contains(t, out.String(), `"n":1`)

	SetLogger(nil)
	out.Reset()
	Logger().Warn("dropped")
	require.Empty(t, out.String())
}
