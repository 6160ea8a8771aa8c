// Package quant encodes canonical float32 data into compact representations
// and decodes it back.
//
// Two independent codec families are provided:
//
//   - Half precision (fp16): EncodeHalf and DecodeHalf work directly on the
//     IEEE-754 bit patterns. QuantizeFP16 halves the storage size.
//   - Range quantizers (int8, uint8): lossy linear mappings onto a single
//     byte per element. QuantizeInt8 derives a scale and zero point from the
//     data range; QuantizeUint8 assumes input already normalized to [0,1].
//
// Every quantizer returns a Buffer whose Scheme carries the parameters needed
// to invert it. The scheme cannot be recovered from the quantized bytes, so it
// must be stored next to them; package blob does that for persisted data.
//
//	buf, err := quant.QuantizeInt8(values)
//	if err != nil {
//	    return err
//	}
//	restored, err := quant.DequantizeInt8(buf.Data, buf.Scheme)
//
// Multi-byte elements in Buffer.Data are little-endian, the layout GPU upload
// buffers expect. All functions are pure and safe for concurrent use.
package quant
