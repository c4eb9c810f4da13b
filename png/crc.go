package png

import "github.com/pkg/errors"

// crcTable is the precomputed table of CRCs of all 8-bit messages, built
// once at package init from the PNG/zlib reflected polynomial 0xEDB88320.
var crcTable [256]uint32

func init() {
	for n := 0; n < 256; n++ {
		c := uint32(n)
		for i := 0; i < 8; i++ {
			if c&1 != 0 {
				c = 0xEDB88320 ^ (c >> 1)
			} else {
				c = c >> 1
			}
		}
		crcTable[n] = c
	}
}

// crc32PNG returns the CRC-32 of buf using the PNG polynomial, initial
// value 0xFFFFFFFF and final XOR 0xFFFFFFFF.
func crc32PNG(buf []byte) uint32 {
	c := uint32(0xFFFFFFFF)
	for _, b := range buf {
		c = crcTable[(c^uint32(b))&0xFF] ^ (c >> 8)
	}
	return c ^ 0xFFFFFFFF
}

// verifyCRC compares expected against the computed CRC of buf. On mismatch
// it returns an error carrying both values.
func verifyCRC(expected uint32, buf []byte) error {
	computed := crc32PNG(buf)
	if computed != expected {
		return errors.Errorf("png: CRC mismatch: expected %08x, computed %08x", expected, computed)
	}
	return nil
}
