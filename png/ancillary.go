package png

import (
	"bytes"
	"compress/zlib"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// scale8 reproduces the source's tRNS/bKGD downscaling rule: 16-bit
// samples divide by 256 to reach 8 bits; anything narrower truncates to
// its low byte and is scaled by 8/bitDepth. Deliberately not the precise
// /255 or /257 mapping.
func scale8(val uint16, bitDepth uint8) uint8 {
	if bitDepth == 16 {
		return uint8(val / 256)
	}
	return uint8(val * 8 / uint16(bitDepth))
}

// parseTRNS decodes a tRNS payload according to the color type already
// installed in md. It never mutates md itself — the caller installs the
// result.
func parseTRNS(data []byte, md *Metadata) (*Alpha, error) {
	switch md.ColorType {
	case ColorGray:
		if len(data) < 2 {
			return nil, errors.WithStack(FormatError("tRNS too short for Gray"))
		}
		val := byteOrder.Uint16(data[:2])
		return &Alpha{Kind: AlphaGray, Gray: scale8(val, md.BitDepth)}, nil

	case ColorRGB:
		if len(data) < 6 {
			return nil, errors.WithStack(FormatError("tRNS too short for RGB"))
		}
		r := scale8(byteOrder.Uint16(data[0:2]), md.BitDepth)
		g := scale8(byteOrder.Uint16(data[2:4]), md.BitDepth)
		b := scale8(byteOrder.Uint16(data[4:6]), md.BitDepth)
		return &Alpha{Kind: AlphaRGB, RGB: RGB{r, g, b}}, nil

	case ColorPalette:
		if len(md.Palette) == 0 {
			return nil, errors.WithStack(FormatError("tRNS before PLTE for Palette image"))
		}
		alpha := make([]uint8, len(md.Palette))
		copy(alpha, data)
		for i := len(data); i < len(alpha); i++ {
			alpha[i] = 255
		}
		return &Alpha{Kind: AlphaPalette, Palette: alpha}, nil

	default:
		return nil, errors.WithStack(FormatError("tRNS not allowed for color type " + md.ColorType.String()))
	}
}

// parseBKGD decodes a bKGD payload into a single RGB background color,
// rewriting (0,0,0) to (0,0,1) so a black background is never confused
// with the transparent sentinel.
func parseBKGD(data []byte, md *Metadata) (RGB, error) {
	var c RGB
	switch md.ColorType {
	case ColorPalette:
		if len(data) < 1 {
			return RGB{}, errors.WithStack(FormatError("bKGD empty for Palette"))
		}
		idx := int(data[0])
		if idx >= len(md.Palette) {
			return RGB{}, errors.WithStack(FormatError("bKGD palette index out of range"))
		}
		c = md.Palette[idx]

	case ColorGray, ColorGrayAlpha:
		if len(data) < 2 {
			return RGB{}, errors.WithStack(FormatError("bKGD too short for Gray"))
		}
		v := scale8(byteOrder.Uint16(data[0:2]), md.BitDepth)
		c = RGB{v, v, v}

	case ColorRGB, ColorRGBA:
		if len(data) < 6 {
			return RGB{}, errors.WithStack(FormatError("bKGD too short for RGB"))
		}
		r := scale8(byteOrder.Uint16(data[0:2]), md.BitDepth)
		g := scale8(byteOrder.Uint16(data[2:4]), md.BitDepth)
		// Bytes 4:6, not 2:6 — the blue sample follows red and green,
		// each occupying two bytes.
		b := scale8(byteOrder.Uint16(data[4:6]), md.BitDepth)
		c = RGB{r, g, b}

	default:
		return RGB{}, errors.WithStack(FormatError("bKGD unsupported color type"))
	}

	return rewriteOpaqueBlack(c), nil
}

// parseTIME decodes the 7-byte tIME chunk.
func parseTIME(data []byte) (*TimeStamp, error) {
	if len(data) != 7 {
		return nil, errors.WithStack(FormatError("tIME must be 7 bytes"))
	}
	return &TimeStamp{
		Year:   byteOrder.Uint16(data[0:2]),
		Month:  data[2],
		Day:    data[3],
		Hour:   data[4],
		Minute: data[5],
		Second: data[6],
	}, nil
}

// splitKeyword splits a tEXt/zTXt payload at the first NUL byte.
func splitKeyword(data []byte) (keyword, rest []byte, err error) {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return nil, nil, errors.WithStack(FormatError("missing NUL keyword separator"))
	}
	return data[:i], data[i+1:], nil
}

// parseTEXT decodes a tEXt chunk: keyword, NUL, text.
func parseTEXT(data []byte) (TextEntry, error) {
	keyword, text, err := splitKeyword(data)
	if err != nil {
		return TextEntry{}, err
	}
	if !utf8.Valid(keyword) || !utf8.Valid(text) {
		return TextEntry{}, errors.WithStack(FormatError("tEXt: non-UTF-8 text"))
	}
	return TextEntry{Keyword: string(keyword), Text: string(text)}, nil
}

// parseZTXT decodes a zTXt chunk: keyword, NUL, one compression-method
// byte, then a ZLIB-compressed text stream. It inflates the stream and
// defers to the same decoding as tEXt.
func parseZTXT(data []byte) (TextEntry, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return TextEntry{}, err
	}
	if len(rest) < 1 {
		return TextEntry{}, errors.WithStack(FormatError("zTXt missing compression method byte"))
	}
	if rest[0] != 0 {
		return TextEntry{}, errors.WithStack(UnsupportedError("zTXt compression method"))
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest[1:]))
	if err != nil {
		return TextEntry{}, errors.WithStack(err)
	}
	defer zr.Close()

	text, err := io.ReadAll(zr)
	if err != nil {
		return TextEntry{}, errors.WithStack(err)
	}

	if !utf8.Valid(keyword) || !utf8.Valid(text) {
		return TextEntry{}, errors.WithStack(FormatError("zTXt: non-UTF-8 text"))
	}
	return TextEntry{Keyword: string(keyword), Text: string(text)}, nil
}
