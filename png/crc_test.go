package png

import "testing"

// A 1x1 8-bit RGB IHDR payload; this literal CRC pins this implementation
// to bit-exact compatibility with the reference polynomial and init/xor
// constants.
func TestCRC32PNG_KnownIHDR(t *testing.T) {
	data := append([]byte("IHDR"), []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}...)
	got := crc32PNG(data)
	want := uint32(0x907753de)
	if got != want {
		t.Fatalf("crc32PNG(IHDR 1x1 8-bit RGB) = %08x, want %08x", got, want)
	}
}

func TestVerifyCRC_RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0},
		[]byte("IDAT"),
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	for _, s := range cases {
		if err := verifyCRC(crc32PNG(s), s); err != nil {
			t.Errorf("verifyCRC(crc32PNG(%q), ...) = %v, want nil", s, err)
		}
	}
}

func TestVerifyCRC_Mismatch(t *testing.T) {
	s := []byte("IDAT")
	if err := verifyCRC(crc32PNG(s)+1, s); err == nil {
		t.Fatal("expected a mismatch error, got nil")
	}
}
