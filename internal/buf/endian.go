// Package buf contains overflow-safe size arithmetic and little-endian codecs
// for fixed-width elements.
package buf

import "encoding/binary"

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// UintLE decodes an element of width len(b) (1, 2, 4 or 8 bytes).
// ok is false for any other width.
func UintLE(b []byte) (uint64, bool) {
	switch len(b) {
	case 1:
		return uint64(b[0]), true
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), true
	case 8:
		return binary.LittleEndian.Uint64(b), true
	default:
		return 0, false
	}
}

// PutUintLE encodes v into an element of width len(b) (1, 2, 4 or 8 bytes),
// truncating high bits. ok is false for any other width.
func PutUintLE(b []byte, v uint64) bool {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, v)
	default:
		return false
	}
	return true
}
