package png

import "github.com/pkg/errors"

const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// reconstructFilters reverses the per-scanline filters in place. data must
// be exactly height rows of (1 filter byte + width*pixelSize sample
// bytes). Once a row is resolved its filter byte is reset to 0 (None).
//
// Reconstruction is strictly top-to-bottom, left-to-right: each byte's
// "left" and "up" neighbors must already hold their reconstructed values,
// so the loop below both reads and writes the same buffer by index rather
// than through any aliased reference.
func reconstructFilters(data []byte, width, height, pixelSize int) error {
	stride := 1 + width*pixelSize
	if len(data) != stride*height {
		return errors.WithStack(FormatError("scanline buffer has wrong size"))
	}

	for y := 0; y < height; y++ {
		rowStart := y * stride
		ft := data[rowStart]
		s := rowStart + 1
		e := rowStart + stride

		switch ft {
		case filterNone:
			// raw byte stands as-is.

		case filterSub:
			for x := s; x < e; x++ {
				var left byte
				if x-s >= pixelSize {
					left = data[x-pixelSize]
				}
				data[x] += left
			}

		case filterUp:
			for x := s; x < e; x++ {
				var up byte
				if y > 0 {
					up = data[x-stride]
				}
				data[x] += up
			}

		case filterAverage:
			for x := s; x < e; x++ {
				var left, up int
				if x-s >= pixelSize {
					left = int(data[x-pixelSize])
				}
				if y > 0 {
					up = int(data[x-stride])
				}
				data[x] += byte((left + up) / 2)
			}

		case filterPaeth:
			for x := s; x < e; x++ {
				var left, up, upLeft int
				hasLeft := x-s >= pixelSize
				if hasLeft {
					left = int(data[x-pixelSize])
				}
				if y > 0 {
					up = int(data[x-stride])
				}
				if hasLeft && y > 0 {
					upLeft = int(data[x-pixelSize-stride])
				}
				data[x] += paeth(left, up, upLeft)
			}

		default:
			return errors.WithStack(FormatError("unrecognised filter type"))
		}
		data[rowStart] = filterNone
	}

	return nil
}

// paeth implements the PNG Paeth predictor. It always returns one of a, b,
// c (as a byte), with ties broken in order a, b, c.
func paeth(a, b, c int) byte {
	p := a + b - c
	pa := abs(p - a)
	pb := abs(p - b)
	pc := abs(p - c)

	switch {
	case pa <= pb && pa <= pc:
		return byte(a)
	case pb <= pc:
		return byte(b)
	default:
		return byte(c)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
