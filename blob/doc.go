// Package blob encodes quantized tensors into self-describing artifacts and
// decodes them back.
//
// An artifact is a section.Header followed by the payload. The header holds
// the element count, the full quantization scheme, the payload sizes and an
// xxHash64 checksum of the raw payload, so Decode needs nothing but the bytes:
//
//	data, err := blob.Encode(buf, blob.WithCompression(format.CompressionZstd))
//	...
//	restored, err := blob.DecodeBuffer(data)
//	values, err := quant.Dequantize(restored)
//
// Payload elements are written in the header's byte order, little-endian by
// default. quant.Buffer data is always little-endian; Encode and Decode convert
// multi-byte elements when the artifact is big-endian.
package blob
