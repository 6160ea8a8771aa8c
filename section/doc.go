// Package section defines the binary header of tensorbuf artifacts.
//
// An artifact is a fixed 56-byte header followed by the payload: the
// quantized element bytes, optionally compressed. The header carries the
// complete quantization scheme, so an artifact is self-describing.
//
// # Header Format
//
//	Bytes  | Field           | Type    | Description
//	-------|-----------------|---------|----------------------------------------
//	0-1    | Options         | uint16  | magic 0xEC10, endianness, compressed bit
//	2      | Precision       | uint8   | format.Precision of the elements
//	3      | CompressionType | uint8   | format.CompressionType of the payload
//	4-7    | Count           | uint32  | element count
//	8-11   | RawSize         | uint32  | payload size before compression
//	12-15  | StoredSize      | uint32  | payload size after the header
//	16-23  | Scale           | float64 | quantization scale, 0 when absent
//	24-31  | ZeroPoint       | float64 | int8 zero point
//	32-39  | Min             | float64 | range minimum
//	40-47  | Max             | float64 | range maximum
//	48-55  | Checksum        | uint64  | xxHash64 of the raw payload
//
// The Options field is always little-endian. Its endianness bit selects the
// byte order of every other field and of multi-byte payload elements.
package section
