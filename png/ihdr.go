package png

import "github.com/pkg/errors"

// parseIHDR validates and decodes the 13-byte IHDR payload, checking color
// type, bit depth, compression method, filter method, then interlace
// method, in that order.
func parseIHDR(data []byte) (*Metadata, error) {
	if len(data) != 13 {
		return nil, errors.WithStack(FormatError("IHDR must be 13 bytes"))
	}

	md := newMetadata()
	md.Width = byteOrder.Uint32(data[0:4])
	md.Height = byteOrder.Uint32(data[4:8])
	md.BitDepth = data[8]
	md.ColorType = ColorType(data[9])
	md.CompressionMethod = data[10]
	md.FilterMethod = data[11]
	md.InterlaceMethod = data[12]

	if md.Width == 0 || md.Height == 0 {
		return nil, errors.WithStack(FormatError("zero width or height"))
	}
	if !md.ColorType.valid() {
		return nil, errors.WithStack(FormatError("Malformed Color Type"))
	}
	if !bitDepthAllowed(md.ColorType, md.BitDepth) {
		return nil, errors.WithStack(FormatError("Malformed Bit Depth"))
	}
	if md.CompressionMethod != 0 {
		return nil, errors.WithStack(FormatError("unknown compression method"))
	}
	if md.FilterMethod != 0 {
		return nil, errors.WithStack(FormatError("unknown filter method"))
	}
	switch md.InterlaceMethod {
	case 0:
		// fine
	case 1:
		return nil, errors.WithStack(UnsupportedError("Interlacing unsupported"))
	default:
		return nil, errors.WithStack(FormatError("unknown interlace method"))
	}

	return md, nil
}

func bitDepthAllowed(c ColorType, depth uint8) bool {
	for _, d := range c.allowedBitDepths() {
		if d == depth {
			return true
		}
	}
	return false
}
