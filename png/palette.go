package png

import "github.com/pkg/errors"

// parsePalette decodes a PLTE payload into an ordered sequence of RGB
// triples, indexed 0..N/3-1. No per-entry validation is performed.
func parsePalette(data []byte) ([]RGB, error) {
	if len(data)%3 != 0 {
		return nil, errors.WithStack(FormatError("PLTE length not divisible by 3"))
	}
	n := len(data) / 3
	if n == 0 || n > 256 {
		return nil, errors.WithStack(FormatError("PLTE entry count out of range"))
	}

	palette := make([]RGB, n)
	for i := 0; i < n; i++ {
		palette[i] = RGB{data[3*i], data[3*i+1], data[3*i+2]}
	}
	return palette, nil
}
