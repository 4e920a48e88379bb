package hal

import "testing"

func TestRGB565(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0, 0, 0, 0x0000},
		{255, 255, 255, 0xFFFF},
		{255, 0, 0, 0xF800},
		{0, 255, 0, 0x07E0},
		{0, 0, 255, 0x001F},
	}
	for _, tt := range tests {
		if got := rgb565(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("rgb565(%d, %d, %d) = %#04x, want %#04x", tt.r, tt.g, tt.b, got, tt.want)
		}
		r, g, b := rgb888From565(tt.want)
		if rgb565(r, g, b) != tt.want {
			t.Errorf("rgb888From565(%#04x) = %d, %d, %d does not round-trip", tt.want, r, g, b)
		}
	}
}

func TestExpandRGB565(t *testing.T) {
	src := make([]byte, 4)
	fillRGB565(src, 0xF800)
	dst := make([]byte, 8)
	expandRGB565(dst, src)

	want := []byte{255, 0, 0, 255, 255, 0, 0, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("expandRGB565() = %v, want %v", dst, want)
		}
	}
}
