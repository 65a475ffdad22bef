package chunk

import "github.com/snksoft/crc"

// VerifyCRC32 recomputes the IEEE CRC-32 over a chunk's type tag and payload
// and reports whether it matches the stored CRC field. This is never called
// from Split: the core's decode path parses CRC but does not verify it. It
// exists only for the diagnostic tool's -strict mode.
func VerifyCRC32(c Chunk) bool {
	preceding := append([]byte(c.Type), c.Data...)
	computed := crc.CalculateCRC(crc.CRC32, preceding)
	return uint32(computed) == c.CRC
}
