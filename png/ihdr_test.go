package png

import (
	"testing"

	"github.com/pkg/errors"
)

func validIHDR() []byte {
	// 4x4, 8-bit, RGB, compression 0, filter 0, interlace 0.
	return []byte{0, 0, 0, 4, 0, 0, 0, 4, 8, 2, 0, 0, 0}
}

func TestParseIHDR_Valid(t *testing.T) {
	md, err := parseIHDR(validIHDR())
	if err != nil {
		t.Fatalf("parseIHDR: %v", err)
	}
	if md.Width != 4 || md.Height != 4 || md.BitDepth != 8 || md.ColorType != ColorRGB {
		t.Errorf("parseIHDR = %+v, unexpected fields", md)
	}
}

func TestParseIHDR_WrongLength(t *testing.T) {
	if _, err := parseIHDR(validIHDR()[:12]); err == nil {
		t.Fatal("expected an error for a short IHDR payload")
	}
}

func TestParseIHDR_ZeroDimensions(t *testing.T) {
	data := validIHDR()
	data[3] = 0
	if _, err := parseIHDR(data); err == nil {
		t.Fatal("expected an error for zero width")
	}
}

func TestParseIHDR_InvalidColorType(t *testing.T) {
	data := validIHDR()
	data[9] = 5
	if _, err := parseIHDR(data); err == nil {
		t.Fatal("expected an error for an invalid color type")
	}
}

func TestParseIHDR_BitDepthNotAllowedForColorType(t *testing.T) {
	data := validIHDR()
	data[9] = byte(ColorPalette)
	data[8] = 16 // palette only allows 1,2,4,8
	if _, err := parseIHDR(data); err == nil {
		t.Fatal("expected an error for an unsupported bit depth/color type combination")
	}
}

func TestParseIHDR_UnknownCompressionMethod(t *testing.T) {
	data := validIHDR()
	data[10] = 1
	if _, err := parseIHDR(data); err == nil {
		t.Fatal("expected an error for an unknown compression method")
	}
}

func TestParseIHDR_UnknownFilterMethod(t *testing.T) {
	data := validIHDR()
	data[11] = 1
	if _, err := parseIHDR(data); err == nil {
		t.Fatal("expected an error for an unknown filter method")
	}
}

func TestParseIHDR_InterlaceRejected(t *testing.T) {
	data := validIHDR()
	data[12] = 1
	_, err := parseIHDR(data)
	if err == nil {
		t.Fatal("expected an error for interlaced images")
	}
	if _, ok := errors.Cause(err).(UnsupportedError); !ok {
		t.Errorf("err = %T, want UnsupportedError", err)
	}
}

func TestParseIHDR_UnknownInterlaceMethod(t *testing.T) {
	data := validIHDR()
	data[12] = 7
	if _, err := parseIHDR(data); err == nil {
		t.Fatal("expected an error for an unrecognised interlace method")
	}
}

func TestBitDepthAllowed(t *testing.T) {
	cases := []struct {
		c     ColorType
		depth uint8
		want  bool
	}{
		{ColorGray, 1, true},
		{ColorGray, 3, false},
		{ColorRGB, 8, true},
		{ColorRGB, 4, false},
		{ColorPalette, 4, true},
		{ColorPalette, 16, false},
		{ColorGrayAlpha, 8, true},
		{ColorGrayAlpha, 1, false},
		{ColorRGBA, 16, true},
		{ColorRGBA, 2, false},
	}
	for _, c := range cases {
		if got := bitDepthAllowed(c.c, c.depth); got != c.want {
			t.Errorf("bitDepthAllowed(%v, %d) = %v, want %v", c.c, c.depth, got, c.want)
		}
	}
}
