package png

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// chunkName is the 4-byte ASCII chunk type code, compared and dispatched
// on as a string.
type chunkName string

const (
	chunkIHDR chunkName = "IHDR"
	chunkPLTE chunkName = "PLTE"
	chunkIDAT chunkName = "IDAT"
	chunkIEND chunkName = "IEND"

	chunkTRNS chunkName = "tRNS"
	chunkTIME chunkName = "tIME"
	chunkTEXT chunkName = "tEXt"
	chunkZTXT chunkName = "zTXt"
	chunkBKGD chunkName = "bKGD"
)

// isCritical reports whether a chunk's type code has bit 5 of its first
// byte clear (ASCII uppercase), meaning a decoder must understand it.
func (n chunkName) isCritical() bool {
	return len(n) == 4 && n[0]&(1<<5) == 0
}

var byteOrder = binary.BigEndian

// chunk is one raw chunk read off the wire: a 4-byte length, a 4-byte
// ASCII type, `length` bytes of payload, and a 4-byte CRC over type+data.
type chunk struct {
	name chunkName
	data []byte
}

// readChunk reads one length-prefixed chunk from r and verifies its CRC.
// Truncated reads and CRC mismatches are both fatal.
func readChunk(r io.Reader) (*chunk, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	length := byteOrder.Uint32(head[:4])
	name := chunkName(head[4:8])

	// length is a PNG-spec u32 but Go slices are indexed by int; reject
	// anything that could not possibly be backed by memory rather than
	// let a bogus length panic a make().
	if length > 1<<31-1 {
		return nil, errors.WithStack(FormatError("chunk length exceeds PNG maximum"))
	}

	// buf holds type(4) || data(length) || crc(4); the CRC is computed
	// over type||data, i.e. buf[:4+length].
	buf := make([]byte, int(length)+8)
	copy(buf, head[4:8])
	if _, err := io.ReadFull(r, buf[4:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, errors.WithStack(FormatError("chunk truncated"))
		}
		return nil, errors.WithStack(err)
	}

	data := buf[4 : 4+length]
	storedCRC := byteOrder.Uint32(buf[4+length:])
	if err := verifyCRC(storedCRC, buf[:4+length]); err != nil {
		return nil, errors.WithStack(err)
	}

	return &chunk{name: name, data: data}, nil
}
