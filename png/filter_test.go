package png

import (
	"reflect"
	"testing"
)

func TestPaeth_WorkedExample(t *testing.T) {
	if got := paeth(10, 20, 30); got != 10 {
		t.Fatalf("paeth(10,20,30) = %d, want 10", got)
	}
}

func TestPaeth_AlwaysReturnsOneOfInputs(t *testing.T) {
	cases := [][3]int{
		{0, 0, 0},
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{12, 250, 7},
		{128, 128, 128},
	}
	for _, c := range cases {
		a, b, cc := c[0], c[1], c[2]
		got := int(paeth(a, b, cc))
		if got != a && got != b && got != cc {
			t.Errorf("paeth(%d,%d,%d) = %d, not one of the inputs", a, b, cc, got)
		}
	}
}

func TestReconstructFilters_Sub(t *testing.T) {
	// 1x4 RGB row (pixelSize=3), filter type 1 (Sub).
	width, height, px := 4, 1, 3
	row := []byte{1, 10, 20, 30, 1, 2, 3, 1, 2, 3, 1, 2, 3}
	if err := reconstructFilters(row, width, height, px); err != nil {
		t.Fatalf("reconstructFilters: %v", err)
	}
	want := []byte{0, 10, 20, 30, 11, 22, 33, 12, 24, 36, 13, 26, 39}
	if !reflect.DeepEqual(row, want) {
		t.Fatalf("got %v, want %v", row, want)
	}
}

func TestReconstructFilters_UpOnFirstRow(t *testing.T) {
	// Up filter on row 0: up = 0 for all x, so the row is unchanged.
	width, height, px := 4, 1, 3
	row := []byte{2, 10, 20, 30, 1, 2, 3, 1, 2, 3, 1, 2, 3}
	want := make([]byte, len(row))
	copy(want, row)
	if err := reconstructFilters(row, width, height, px); err != nil {
		t.Fatalf("reconstructFilters: %v", err)
	}
	if !reflect.DeepEqual(row[1:], want[1:]) {
		t.Fatalf("got %v, want %v", row[1:], want[1:])
	}
}

func TestReconstructFilters_UnknownFilterType(t *testing.T) {
	row := []byte{9, 0, 0, 0}
	if err := reconstructFilters(row, 1, 1, 3); err == nil {
		t.Fatal("expected an error for an unrecognised filter type")
	}
}

func TestReconstructFilters_WrongSize(t *testing.T) {
	row := []byte{0, 0, 0}
	if err := reconstructFilters(row, 4, 1, 3); err == nil {
		t.Fatal("expected an error for a malformed scanline buffer")
	}
}
