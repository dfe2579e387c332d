package image565

import "testing"

func TestRGBMatchesShift(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				got := RGB(uint8(r), uint8(g), uint8(b))
				want := rgbShift(uint8(r), uint8(g), uint8(b))
				if got != want {
					t.Fatalf("RGB(%d, %d, %d) = %#04x, shift form = %#04x", r, g, b, got, want)
				}
			}
		}
	}
}

func TestComponentsRoundTrip(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b += 3 {
				r5, g6, b5 := RGB(uint8(r), uint8(g), uint8(b)).Components()
				if r5 != uint8(r>>3) || g6 != uint8(g>>2) || b5 != uint8(b>>3) {
					t.Fatalf("Components(RGB(%d, %d, %d)) = (%d, %d, %d)", r, g, b, r5, g6, b5)
				}
			}
		}
	}
}

func TestRGBKnownValues(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    Color
	}{
		{0, 0, 0, 0x0000},
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0, 0, 0xF800},
		{0, 0xFF, 0, 0x07E0},
		{0, 0, 0xFF, 0x001F},
		{0x07, 0x03, 0x07, 0x0000}, // below one step on every channel
		{0x08, 0x04, 0x08, 0x0821},
	}
	for _, tt := range tests {
		if got := RGB(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("RGB(%#x, %#x, %#x) = %#04x, want %#04x", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestRGBAEdges(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 3 {
			for b := 0; b < 256; b += 7 {
				if got, want := RGBA(uint8(r), uint8(g), uint8(b), 0xFF), RGB(uint8(r), uint8(g), uint8(b)); got != want {
					t.Fatalf("RGBA(%d, %d, %d, 255) = %#04x, want %#04x", r, g, b, got, want)
				}
				if got := RGBA(uint8(r), uint8(g), uint8(b), 0); got != Black {
					t.Fatalf("RGBA(%d, %d, %d, 0) = %#04x, want Black", r, g, b, got)
				}
			}
		}
	}
}

func TestRGBAPremultiplies(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a uint8
		want       Color
	}{
		{"half white", 0xFF, 0xFF, 0xFF, 0x80, RGB(0x7F, 0x7F, 0x7F)},
		{"254 scales by 254/256", 0xFF, 0, 0, 0xFE, RGB(0xFD, 0, 0)},
		{"tiny alpha", 0xFF, 0xFF, 0xFF, 0x01, Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBA(tt.r, tt.g, tt.b, tt.a); got != tt.want {
				t.Errorf("RGBA() = %#04x, want %#04x", got, tt.want)
			}
		})
	}
}

func TestFromComponents(t *testing.T) {
	if got := FromComponents(31, 63, 31); got != 0xFFFF {
		t.Errorf("FromComponents(31, 63, 31) = %#04x, want 0xFFFF", got)
	}
	if got := FromComponents(0xFF, 0, 0); got != 0xF800 {
		t.Errorf("FromComponents masks red: got %#04x, want 0xF800", got)
	}
}
