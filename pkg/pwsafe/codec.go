package pwsafe

// Little-endian integer packing for the V3 wire format. Pure, no I/O;
// callers must validate buffer lengths before calling the Read* side,
// same contract as the original's get_int32le/get_int16le helpers.

// ReadUint16LE decodes the first two bytes of b as a little-endian uint16.
func ReadUint16LE(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// ReadUint32LE decodes the first four bytes of b as a little-endian uint32.
func ReadUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// WriteUint16LE encodes v into the first two bytes of b as little-endian.
func WriteUint16LE(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// WriteUint32LE encodes v into the first four bytes of b as little-endian.
func WriteUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
