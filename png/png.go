package png

import (
	"bytes"
	"compress/zlib"
	"io"
	"log"

	"github.com/pkg/errors"
)

var pngSignature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// decodeStage tracks where we are in the chunk ordering state machine.
// The signature check happens inline in Decode, so only
// ExpectIHDR/InBody/Done remain here.
type decodeStage int

const (
	stageExpectIHDR decodeStage = iota
	stageInBody
	stageDone
)

// Decode reads a PNG 1.2 stream from r and returns the fully reconstructed
// RGB raster plus its metadata. It is the single exported operation this
// package provides; everything else (chunk parsing, filter reconstruction,
// sample expansion) is an implementation detail reached only through here.
func Decode(r io.Reader) (*Image, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	if sig != pngSignature {
		return nil, errors.WithStack(ErrInvalidSignature)
	}

	md, idat, err := readChunks(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	samples, err := inflateAndReconstruct(idat, md)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	img, err := expandImage(samples, md)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return img, nil
}

// readChunks drives the chunk stream state machine: it installs IHDR,
// PLTE, and every ancillary chunk into a Metadata record, enforces
// ordering and IDAT contiguity, and returns the concatenated IDAT
// payload. Ancillary parse failures are logged and the chunk is skipped;
// they never abort the loop.
func readChunks(r io.Reader) (*Metadata, []byte, error) {
	var md *Metadata
	var idat bytes.Buffer
	var sawPLTE, sawIDAT, lastWasIDAT bool

	stage := stageExpectIHDR
	for stage != stageDone {
		c, err := readChunk(r)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}

		if stage == stageExpectIHDR {
			if c.name != chunkIHDR {
				return nil, nil, errors.WithStack(ErrChunkOrder)
			}
			md, err = parseIHDR(c.data)
			if err != nil {
				return nil, nil, errors.WithStack(err)
			}
			stage = stageInBody
			continue
		}

		if c.name == chunkIDAT {
			if sawIDAT && !lastWasIDAT {
				return nil, nil, errors.WithStack(ErrChunkOrder)
			}
			idat.Write(c.data)
			sawIDAT = true
			lastWasIDAT = true
			continue
		}
		lastWasIDAT = false

		switch c.name {
		case chunkIHDR:
			return nil, nil, errors.WithStack(ErrChunkOrder)

		case chunkPLTE:
			if sawIDAT {
				return nil, nil, errors.WithStack(ErrChunkOrder)
			}
			palette, err := parsePalette(c.data)
			if err != nil {
				return nil, nil, errors.WithStack(err)
			}
			md.Palette = palette
			sawPLTE = true

		case chunkIEND:
			if len(c.data) != 0 {
				return nil, nil, errors.WithStack(FormatError("IEND must be empty"))
			}
			stage = stageDone

		case chunkTRNS:
			if md.ColorType == ColorPalette && !sawPLTE {
				log.Printf("png: skipping tRNS: %v", errors.New("PLTE must precede tRNS"))
				continue
			}
			alpha, err := parseTRNS(c.data, md)
			if err != nil {
				log.Printf("png: skipping tRNS: %v", err)
				continue
			}
			md.Alpha = alpha

		case chunkBKGD:
			if md.ColorType == ColorPalette && !sawPLTE {
				log.Printf("png: skipping bKGD: %v", errors.New("PLTE must precede bKGD"))
				continue
			}
			bg, err := parseBKGD(c.data, md)
			if err != nil {
				log.Printf("png: skipping bKGD: %v", err)
				continue
			}
			md.Background = bg

		case chunkTIME:
			t, err := parseTIME(c.data)
			if err != nil {
				log.Printf("png: skipping tIME: %v", err)
				continue
			}
			md.Time = t

		case chunkTEXT:
			t, err := parseTEXT(c.data)
			if err != nil {
				log.Printf("png: skipping tEXt: %v", err)
				continue
			}
			md.Text = append(md.Text, t)

		case chunkZTXT:
			t, err := parseZTXT(c.data)
			if err != nil {
				log.Printf("png: skipping zTXt: %v", err)
				continue
			}
			md.Text = append(md.Text, t)

		default:
			if c.name.isCritical() {
				return nil, nil, errors.WithStack(UnsupportedError("unknown critical chunk " + string(c.name)))
			}
			// Unrecognised ancillary chunk: silently ignored.
		}
	}

	if !sawIDAT {
		return nil, nil, errors.WithStack(ErrNoIDAT)
	}
	return md, idat.Bytes(), nil
}

// inflateAndReconstruct decompresses the concatenated IDAT stream and
// reverses the per-scanline filters in place, returning the raw sample
// buffer (still one filter-type byte per row, already resolved to 0).
func inflateAndReconstruct(idat []byte, md *Metadata) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer zr.Close()

	samples, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	px := md.pixelSize()
	if err := reconstructFilters(samples, int(md.Width), int(md.Height), px); err != nil {
		return nil, errors.WithStack(err)
	}
	return samples, nil
}

// expandImage converts the reconstructed (filter-resolved) sample buffer
// into the final RGB raster.
func expandImage(samples []byte, md *Metadata) (*Image, error) {
	width, height := int(md.Width), int(md.Height)
	px := md.pixelSize()
	stride := 1 + width*px

	img := &Image{
		Width:    width,
		Height:   height,
		Pixels:   make([]RGB, width*height),
		Metadata: md,
	}

	for y := 0; y < height; y++ {
		rowStart := y*stride + 1
		row := samples[rowStart : rowStart+width*px]
		dst := img.Pixels[y*width : (y+1)*width]
		if err := expandRow(row, md, width, dst); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return img, nil
}
