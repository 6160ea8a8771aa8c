package section

import "math"

const (
	// Bit masks of the Options field
	CompressedMask   = 0x0001 // Mask for compressed payload bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicTensorV1Opt = 0xEC10 // MagicTensorV1Opt is the version 1 magic number for quantized tensor artifacts.
)

// Header layout.
const (
	HeaderSize      = 56             // fixed header size in bytes
	PayloadOffset   = HeaderSize     // byte offset where the payload starts
	MaxElementCount = math.MaxUint32 // maximum element count of one artifact
	MaxPayloadSize  = math.MaxUint32 // maximum raw or stored payload size
)
