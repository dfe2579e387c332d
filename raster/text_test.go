package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periph.io/x/devices/v3/ili9341/glyph"
	"periph.io/x/devices/v3/ili9341/image565"
)

func TestTextWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"Hi!", 21},
		{" ", 7},
		{"a\nb\r", 14},
		{"\x01\x7fé€", 0},
		{"ab\tc", 21},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TextWidth(tt.s), "TextWidth(%q)", tt.s)
	}
}

func TestCharTransparent(t *testing.T) {
	const x, y = 4, 14
	img := newImage(t, 16, 20)
	adv := Char(img, 'W', x, y, white, image565.Transparent)
	assert.Equal(t, 7, adv)

	m, ok := glyph.Lookup('W')
	require.True(t, ok)
	set := 0
	for _, b := range glyph.Bitmap(m) {
		for ; b != 0; b &= b - 1 {
			set++
		}
	}

	pts := painted(img)
	assert.Len(t, pts, set)
	cell := image.Rect(x, y-glyph.Ascent, x+adv, y+glyph.Descent)
	for _, p := range pts {
		assert.True(t, p.In(cell), "%v outside %v", p, cell)
		assert.Equal(t, white, img.RGB565At(p.X, p.Y))
	}
}

func TestCharBackground(t *testing.T) {
	const x, y = 4, 14
	img := newImage(t, 16, 20)
	adv := Char(img, 'g', x, y, red, blue)

	cell := image.Rect(x, y-glyph.Ascent, x+adv, y+glyph.Descent)
	fg := 0
	for py := 0; py < 20; py++ {
		for px := 0; px < 16; px++ {
			c := img.RGB565At(px, py)
			if !image.Pt(px, py).In(cell) {
				assert.Equal(t, image565.Black, c, "(%d, %d) outside the cell", px, py)
				continue
			}
			assert.Contains(t, []image565.Color{red, blue}, c, "(%d, %d)", px, py)
			if c == red {
				fg++
			}
		}
	}
	assert.NotZero(t, fg)
}

func TestCharBackgroundSameAsForeground(t *testing.T) {
	const x, y = 4, 14
	got := newImage(t, 16, 20)
	Char(got, 'g', x, y, red, red)

	want := newImage(t, 16, 20)
	Char(want, 'g', x, y, red, image565.Transparent)

	assert.Equal(t, want.Pix, got.Pix, "only the glyph bits are painted")
}

func TestCharPlaceholder(t *testing.T) {
	const x, y = 10, 30
	tests := []struct {
		name     string
		bg       image565.Color
		interior image565.Color
	}{
		{"opaque", blue, blue},
		{"transparent", image565.Transparent, image565.Black},
		{"same as foreground", red, image565.Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newImage(t, 32, 40)
			assert.Equal(t, 14, Char(img, '\x01', x, y, red, tt.bg))

			assert.Equal(t, red, img.RGB565At(x, y-16), "top left corner")
			assert.Equal(t, red, img.RGB565At(x+9, y-1), "bottom right corner")
			assert.Equal(t, red, img.RGB565At(x+4, y-6), "question mark dot")
			assert.Equal(t, red, img.RGB565At(x+4, y-15), "question mark top")
			assert.Equal(t, tt.interior, img.RGB565At(x+1, y-2))
			assert.Equal(t, image565.Black, img.RGB565At(x+10, y-8), "right of the box")
			assert.Equal(t, image565.Black, img.RGB565At(x, y), "below the baseline")
		})
	}
}

func TestCharPlaceholderClipped(t *testing.T) {
	img := newImage(t, 8, 8)
	assert.NotPanics(t, func() {
		assert.Equal(t, 14, Char(img, 'é', -5, 3, red, blue))
		assert.Equal(t, 14, Char(img, 0x7F, 6, 100, red, blue))
	})
	assert.NotEmpty(t, painted(img))
}

func TestTextLines(t *testing.T) {
	const x, y = 5, 20
	lineStep := glyph.Height + glyph.LineGap

	got := newImage(t, 64, 64)
	Text(got, "Ab\nc\rd", x, y, green, image565.Transparent)

	want := newImage(t, 64, 64)
	Char(want, 'A', x, y, green, image565.Transparent)
	Char(want, 'b', x+7, y, green, image565.Transparent)
	Char(want, 'c', x, y+lineStep, green, image565.Transparent)
	Char(want, 'd', x, y+lineStep, green, image565.Transparent)

	assert.Equal(t, want.Pix, got.Pix)
	assert.Equal(t, 17, lineStep)
}

func TestTextPlaceholderAdvance(t *testing.T) {
	got := newImage(t, 64, 32)
	Text(got, "\x01A", 0, 20, white, image565.Transparent)

	want := newImage(t, 64, 32)
	Char(want, '\x01', 0, 20, white, image565.Transparent)
	Char(want, 'A', 14, 20, white, image565.Transparent)

	assert.Equal(t, want.Pix, got.Pix)
}
