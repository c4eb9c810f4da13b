package png

import "github.com/pkg/errors"

// sampleAt extracts the i-th sub-byte sample from b, MSB-first, for the
// given bit depth (1, 2 or 4).
func sampleAt(b byte, depth uint8, i int) byte {
	switch depth {
	case 1:
		return (b >> uint(7-i)) & 0x1
	case 2:
		return (b >> uint(6-2*i)) & 0x3
	case 4:
		return (b >> uint(4-4*i)) & 0xF
	default:
		return b
	}
}

// scaleGraySample expands a sub-byte gray sample to its natural 8-bit
// scale: depth 1 multiplies by 255, depth 2 by 85, depth 4 by 17.
func scaleGraySample(raw byte, depth uint8) uint8 {
	switch depth {
	case 1:
		return raw * 255
	case 2:
		return raw * 85
	case 4:
		return raw * 17
	default:
		return raw
	}
}

// premultiply scales each channel of c by alpha/256.
func premultiply(c RGB, alpha uint8) RGB {
	return RGB{
		R: uint8(uint32(c.R) * uint32(alpha) / 256),
		G: uint8(uint32(c.G) * uint32(alpha) / 256),
		B: uint8(uint32(c.B) * uint32(alpha) / 256),
	}
}

// expandRow converts one reconstructed row of `width` samples (with the
// leading filter byte already stripped) into `width` RGB triples, written
// into dst.
func expandRow(row []byte, md *Metadata, width int, dst []RGB) error {
	switch md.ColorType {
	case ColorPalette:
		return expandPalette(row, md, width, dst)
	case ColorGray:
		return expandGray(row, md, width, dst)
	case ColorRGB:
		return expandRGB(row, md, width, dst)
	case ColorGrayAlpha:
		return expandGrayAlpha(row, md, width, dst)
	case ColorRGBA:
		return expandRGBA(row, md, width, dst)
	default:
		return errors.WithStack(FormatError("unknown color type"))
	}
}

func expandPalette(row []byte, md *Metadata, width int, dst []RGB) error {
	var alpha []uint8
	if md.Alpha != nil && md.Alpha.Kind == AlphaPalette {
		alpha = md.Alpha.Palette
	}

	emit := func(idx, i int) error {
		if i >= len(md.Palette) {
			return errors.WithStack(FormatError("palette index out of range"))
		}
		c := md.Palette[i]
		if alpha != nil {
			c = premultiply(c, alpha[i])
		}
		if alpha == nil || alpha[i] == 255 {
			c = rewriteOpaqueBlack(c)
		}
		dst[idx] = c
		return nil
	}

	switch md.BitDepth {
	case 8:
		for x := 0; x < width; x++ {
			if err := emit(x, int(row[x])); err != nil {
				return err
			}
		}
	case 1, 2, 4:
		depth := md.BitDepth
		perByte := 8 / int(depth)
		idx := 0
		for bi := 0; bi < len(row) && idx < width; bi++ {
			b := row[bi]
			for s := 0; s < perByte && idx < width; s++ {
				if err := emit(idx, int(sampleAt(b, depth, s))); err != nil {
					return err
				}
				idx++
			}
		}
	default:
		return errors.WithStack(FormatError("invalid bit depth for Palette"))
	}
	return nil
}

func expandGray(row []byte, md *Metadata, width int, dst []RGB) error {
	var alphaKey *uint8
	if md.Alpha != nil && md.Alpha.Kind == AlphaGray {
		v := md.Alpha.Gray
		alphaKey = &v
	}

	switch md.BitDepth {
	case 16:
		for x := 0; x < width; x++ {
			dst[x] = grayPixel(row[2*x], alphaKey)
		}
	case 8:
		for x := 0; x < width; x++ {
			dst[x] = grayPixel(row[x], alphaKey)
		}
	case 1, 2, 4:
		depth := md.BitDepth
		perByte := 8 / int(depth)
		idx := 0
		for bi := 0; bi < len(row) && idx < width; bi++ {
			b := row[bi]
			for s := 0; s < perByte && idx < width; s++ {
				val := scaleGraySample(sampleAt(b, depth, s), depth)
				dst[idx] = grayPixel(val, alphaKey)
				idx++
			}
		}
	default:
		return errors.WithStack(FormatError("invalid bit depth for Gray"))
	}
	return nil
}

// grayPixel applies the tRNS key check before the opaque-black rewrite, so
// a genuinely keyed-transparent sample still emits the (0,0,0) sentinel
// instead of being shadowed by the black rewrite.
func grayPixel(val uint8, alphaKey *uint8) RGB {
	transparent := alphaKey != nil && val == *alphaKey
	if transparent {
		return transparentSentinel
	}
	if val == 0 {
		val = 1
	}
	return RGB{val, val, val}
}

func expandRGB(row []byte, md *Metadata, width int, dst []RGB) error {
	var key *RGB
	if md.Alpha != nil && md.Alpha.Kind == AlphaRGB {
		k := md.Alpha.RGB
		key = &k
	}

	switch md.BitDepth {
	case 8:
		for x := 0; x < width; x++ {
			o := x * 3
			dst[x] = rgbPixel(RGB{row[o], row[o+1], row[o+2]}, key)
		}
	case 16:
		for x := 0; x < width; x++ {
			o := x * 6
			dst[x] = rgbPixel(RGB{row[o], row[o+2], row[o+4]}, key)
		}
	default:
		return errors.WithStack(FormatError("invalid bit depth for RGB"))
	}
	return nil
}

func rgbPixel(c RGB, key *RGB) RGB {
	if key != nil && c == *key {
		return transparentSentinel
	}
	return rewriteOpaqueBlack(c)
}

func expandGrayAlpha(row []byte, md *Metadata, width int, dst []RGB) error {
	switch md.BitDepth {
	case 8:
		for x := 0; x < width; x++ {
			o := x * 2
			dst[x] = grayAlphaPixel(row[o], row[o+1])
		}
	case 16:
		for x := 0; x < width; x++ {
			o := x * 4
			dst[x] = grayAlphaPixel(row[o], row[o+2])
		}
	default:
		return errors.WithStack(FormatError("invalid bit depth for GrayAlpha"))
	}
	return nil
}

// grayAlphaPixel premultiplies first and only then applies the opaque-black
// rewrite (for alpha 255), so a fully opaque black pixel is not scaled down
// to the (0,0,0) sentinel.
func grayAlphaPixel(val, alpha uint8) RGB {
	c := premultiply(RGB{val, val, val}, alpha)
	if alpha == 255 {
		c = rewriteOpaqueBlack(c)
	}
	return c
}

func expandRGBA(row []byte, md *Metadata, width int, dst []RGB) error {
	switch md.BitDepth {
	case 8:
		for x := 0; x < width; x++ {
			o := x * 4
			dst[x] = rgbaPixel(RGB{row[o], row[o+1], row[o+2]}, row[o+3])
		}
	case 16:
		for x := 0; x < width; x++ {
			o := x * 8
			dst[x] = rgbaPixel(RGB{row[o], row[o+2], row[o+4]}, row[o+6])
		}
	default:
		return errors.WithStack(FormatError("invalid bit depth for RGBA"))
	}
	return nil
}

func rgbaPixel(c RGB, alpha uint8) RGB {
	c = premultiply(c, alpha)
	if alpha == 255 {
		c = rewriteOpaqueBlack(c)
	}
	return c
}
