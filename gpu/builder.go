package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/tensorbuf/encoding"
	"github.com/arloliu/tensorbuf/endian"
	"github.com/arloliu/tensorbuf/errs"
	"github.com/arloliu/tensorbuf/normalize"
	"github.com/arloliu/tensorbuf/quant"
)

// ConversionResult reports what quantization did to the data.
type ConversionResult struct {
	Data             []byte
	OriginalSize     int
	CompressedSize   int
	CompressionRatio float64
	Scheme           *quant.Scheme
}

// Result is the outcome of Build.
type Result struct {
	Buffer Buffer
	// Conversion is nil unless quantization was requested.
	Conversion *ConversionResult
}

// Build uploads input into a new device buffer.
//
// The input is always normalized first. With WithQuantization the canonical
// data is quantized and the quantized bytes are uploaded; otherwise the
// float32 data is uploaded as little-endian bytes. The buffer is created with
// exactly the processed byte length and MappedAtCreation set, filled through
// its mapping and unmapped before Build returns.
//
// Parameters:
//   - device: Device that allocates the buffer
//   - input: Any input accepted by normalize.Normalize
//   - usage: Usage flags for the new buffer
//   - opts: Build options
//
// Returns:
//   - *Result: The unmapped buffer, plus the conversion report when quantized
//   - error: Normalization, quantization or device error
func Build(device Device, input any, usage Usage, opts ...BuildOption) (*Result, error) {
	cfg, err := newBuildConfig(opts...)
	if err != nil {
		return nil, err
	}

	return build(device, input, usage, cfg.label, cfg)
}

func build(device Device, input any, usage Usage, label string, cfg *BuildConfig) (*Result, error) {
	if device == nil {
		return nil, errs.ErrNilDevice
	}

	canonical, err := normalize.Normalize(input, cfg.inputOpts...)
	if err != nil {
		return nil, err
	}

	data, conversion, err := process(canonical, cfg)
	if err != nil {
		return nil, err
	}

	buf, err := device.CreateBuffer(BufferDescriptor{
		Label:            label,
		Size:             len(data),
		Usage:            usage,
		MappedAtCreation: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", label, err)
	}

	if err := writeMapped(buf, data); err != nil {
		if d, ok := buf.(Destroyer); ok {
			d.Destroy()
		}

		return nil, fmt.Errorf("write buffer %q: %w", label, err)
	}

	cfg.logger.Debug("gpu buffer built",
		slog.String("label", label),
		slog.Int("elements", canonical.Len()),
		slog.Int("bytes", len(data)),
		slog.String("usage", usage.String()),
		slog.Bool("quantized", conversion != nil),
	)

	return &Result{Buffer: buf, Conversion: conversion}, nil
}

// process returns the bytes to upload for canonical.
func process(canonical normalize.Canonical, cfg *BuildConfig) ([]byte, *ConversionResult, error) {
	if !cfg.quantize {
		return uploadBytes(canonical), nil, nil
	}

	qbuf, err := quant.Quantize(canonical, cfg.precision, cfg.quantOpts...)
	if err != nil {
		return nil, nil, err
	}

	scheme := qbuf.Scheme

	return qbuf.Data, &ConversionResult{
		Data:             qbuf.Data,
		OriginalSize:     canonical.ByteLen(),
		CompressedSize:   qbuf.Size(),
		CompressionRatio: qbuf.CompressionRatio,
		Scheme:           &scheme,
	}, nil
}

// uploadBytes returns the little-endian bytes of canonical, viewing them in
// place on little-endian hosts.
func uploadBytes(canonical normalize.Canonical) []byte {
	if endian.IsNativeLittleEndian() {
		return encoding.Float32sAsBytes(canonical)
	}

	return canonical.Bytes(endian.GetLittleEndianEngine())
}

func writeMapped(buf Buffer, data []byte) error {
	dst, err := buf.MappedRange()
	if err != nil {
		return err
	}

	if _, err := CopyBytes(dst, data); err != nil {
		return errors.Join(err, buf.Unmap())
	}

	return buf.Unmap()
}

// CopyBytes copies src into the start of dst and returns the number of bytes
// copied. Nothing is written when dst is shorter than src.
func CopyBytes(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, fmt.Errorf("%w: destination %d bytes, source %d bytes",
			errs.ErrDestinationTooSmall, len(dst), len(src))
	}

	return copy(dst, src), nil
}
