// Package tensorbuf turns numeric buffers into compact, GPU-ready data.
//
// It accepts raw byte buffers and typed numeric slices, normalizes them to a
// canonical float32 array, optionally quantizes them to fp16, int8 or uint8,
// and either uploads the result into a GPU buffer or encodes it as a
// self-describing artifact for storage.
//
// # Core Features
//
//   - Input normalization with automatic realignment of misaligned byte views
//   - Four precisions: fp32 (identity), fp16, range-quantized int8, unit-range uint8
//   - Memory analysis with size, compression ratio and accuracy-loss estimates
//   - Mapped-at-creation GPU buffer construction, single and batched
//   - Artifact encoding with optional compression (None, Zstd, S2, LZ4)
//   - Built-in xxHash64 checksums for payload integrity
//
// # Basic Usage
//
// Quantizing and restoring values:
//
//	import "github.com/arloliu/tensorbuf"
//
//	buf, _ := tensorbuf.Quantize([]float32{-1, 0, 0.5, 1}, format.PrecisionInt8)
//	values, _ := tensorbuf.Dequantize(buf)
//
// Building a GPU buffer:
//
//	result, _ := tensorbuf.Build(device, weights, gpu.UsageStorage|gpu.UsageCopyDst,
//	    gpu.WithQuantization(format.PrecisionFP16),
//	    gpu.WithLabel("layer0.weights"),
//	)
//
// Persisting a quantized buffer:
//
//	data, _ := tensorbuf.Encode(buf, blob.WithCompression(format.CompressionZstd))
//	restored, _ := tensorbuf.Decode(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the normalize,
// quant, analyze, gpu and blob packages. For advanced usage and fine-grained
// control, use those packages directly.
package tensorbuf

import (
	"github.com/arloliu/tensorbuf/analyze"
	"github.com/arloliu/tensorbuf/blob"
	"github.com/arloliu/tensorbuf/format"
	"github.com/arloliu/tensorbuf/gpu"
	"github.com/arloliu/tensorbuf/normalize"
	"github.com/arloliu/tensorbuf/quant"
)

// Normalize converts a supported input into a canonical float32 array.
//
// Accepted inputs are []byte (packed float32 values), []float32, []float64,
// []int8, normalize.Uint8Values, []int16, []uint16 and the remaining Go integer
// slices. Signed and unsigned 8- and 16-bit integers are scaled to [-1, 1] and
// [0, 1]; wider integers convert by value.
//
// Parameters:
//   - input: Raw buffer or typed numeric slice
//   - opts: Sub-view selection (normalize.WithByteOffset, normalize.WithLength)
//     and byte order for raw bytes (normalize.WithByteOrder)
//
// Returns:
//   - normalize.Canonical: The float32 view; it aliases input when no conversion is needed
//   - error: errs.ErrUnsupportedBufferType or errs.ErrOutOfRange
//
// A byte offset that is not a multiple of four is not an error: the selected
// bytes are copied into aligned storage and a warning is logged.
func Normalize(input any, opts ...normalize.Option) (normalize.Canonical, error) {
	return normalize.Normalize(input, opts...)
}

// Quantize converts float32 values to the requested precision.
//
// Parameters:
//   - values: Source values
//   - precision: Target precision
//   - opts: Explicit int8 parameters (quant.WithScale, quant.WithZeroPoint, quant.WithRange);
//     ignored by the other precisions
//
// Returns:
//   - quant.Buffer: Packed data plus the scheme needed to restore it
//   - error: errs.ErrInvalidPrecision for an unknown precision
//
// Example:
//
//	buf, err := tensorbuf.Quantize(weights, format.PrecisionInt8,
//	    quant.WithRange(-1, 1),
//	)
func Quantize(values []float32, precision format.Precision, opts ...quant.Int8Option) (quant.Buffer, error) {
	return quant.Quantize(values, precision, opts...)
}

// Dequantize restores approximate float32 values from a quantized buffer.
func Dequantize(buf quant.Buffer) ([]float32, error) {
	return quant.Dequantize(buf)
}

// Analyze estimates the memory footprint of input at each precision.
//
// When no precisions are given, all four are analyzed in the order
// fp32, fp16, int8, uint8.
//
// Example:
//
//	estimates, _ := tensorbuf.Analyze(weights)
//	best, ok := tensorbuf.Recommend(estimates, analyze.HintStorage)
func Analyze(input any, precisions ...format.Precision) ([]analyze.Estimate, error) {
	return analyze.Analyze(input, precisions...)
}

// Recommend picks an estimate for the given usage hint.
func Recommend(estimates []analyze.Estimate, hint analyze.Hint) (analyze.Estimate, bool) {
	return analyze.Recommend(estimates, hint)
}

// Build creates a GPU buffer initialized with input.
//
// Parameters:
//   - device: Device that allocates the buffer
//   - input: Raw buffer or typed numeric slice
//   - usage: GPU usage flags for the new buffer
//   - opts: Quantization, label, input and logging options
//
// Returns:
//   - *gpu.Result: The buffer and, when quantized, the conversion result
//   - error: Normalization, quantization or device error; a partially written
//     buffer is destroyed before the error is returned
func Build(device gpu.Device, input any, usage gpu.Usage, opts ...gpu.BuildOption) (*gpu.Result, error) {
	return gpu.Build(device, input, usage, opts...)
}

// BatchBuild creates one GPU buffer per named input.
//
// Entries are processed concurrently. The first failure stops the batch and
// destroys every buffer already built.
func BatchBuild(device gpu.Device, inputs map[string]any, usage gpu.Usage, opts ...gpu.BuildOption) (*gpu.BatchResult, error) {
	return gpu.BatchProcess(device, inputs, usage, opts...)
}

// Encode serializes a quantized buffer as a self-describing artifact.
//
// Available options:
//   - blob.WithLittleEndian() / blob.WithBigEndian()
//   - blob.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
func Encode(buf quant.Buffer, opts ...blob.EncoderOption) ([]byte, error) {
	return blob.Encode(buf, opts...)
}

// Decode parses an artifact produced by Encode back into a quantized buffer.
//
// The payload checksum is verified; corrupted data returns errs.ErrChecksumMismatch.
// Payloads larger than blob.DefaultMaxRawSize are rejected unless
// blob.WithMaxRawSize raises the limit.
func Decode(data []byte, opts ...blob.DecoderOption) (quant.Buffer, error) {
	return blob.DecodeBuffer(data, opts...)
}
