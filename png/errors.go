package png

import "github.com/pkg/errors"

// FormatError reports that the input is not validly-formed PNG data.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// UnsupportedError reports a structurally valid PNG feature this decoder
// does not implement.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "png: unsupported feature: " + string(e) }

var (
	// ErrInvalidSignature is returned when the first 8 bytes are not the
	// PNG signature.
	ErrInvalidSignature = errors.New("png: not a PNG file")

	// ErrChunkOrder covers every fatal chunk ordering violation: the first
	// chunk not being IHDR, a second IHDR, PLTE appearing after IDAT, and
	// non-contiguous IDAT chunks. A tRNS or bKGD that precedes PLTE in a
	// Palette image is logged and skipped rather than reported here.
	ErrChunkOrder = errors.New("png: chunk out of order")

	// ErrNoIDAT is returned when the stream reaches IEND without ever
	// having seen an IDAT chunk.
	ErrNoIDAT = errors.New("png: no IDAT chunks found")
)
