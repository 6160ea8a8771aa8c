// Package encoding converts typed element slices to and from their packed
// byte representation.
//
// Every function takes an endian.EndianEngine so the same code produces
// little-endian GPU upload buffers and big-endian artifacts alike:
//
//	engine := endian.GetLittleEndianEngine()
//	payload := encoding.AppendFloat32s(engine, nil, values)
//
//	decoded := make([]float32, len(values))
//	encoding.DecodeFloat32s(engine, decoded, payload)
//
// The As helpers (Float32sAsBytes, BytesAsFloat32s, BytesAsInt8s)
// reinterpret memory in place. They never copy, so the result
// aliases the input, and BytesAsFloat32s refuses unaligned input rather than
// producing an unaligned float32 slice.
package encoding
