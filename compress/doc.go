// Package compress provides the payload codecs of tensorbuf artifacts.
//
// Quantization already shrinks a tensor by a fixed ratio; compression is an
// optional second stage applied to the quantized bytes before they are
// written after the artifact header:
//   - None: payload stored as is
//   - Zstd: best ratio, moderate speed (klauspost/compress, or valyala/gozstd
//     when built with the gozstd tag and cgo)
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// Int8 and uint8 payloads of smooth data usually compress well; fp16 and fp32
// payloads of trained weights are close to incompressible, and None is the
// better choice for them.
//
// The artifact header records the raw payload size, so every Decompressor
// receives it and allocates the output once.
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and decoders and
// are safe for concurrent use.
package compress
