package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func TestGeometryMatchesFace(t *testing.T) {
	f := basicfont.Face7x13
	assert.Equal(t, f.Height, Height)
	assert.Equal(t, f.Ascent, Ascent)
	assert.Equal(t, f.Descent, Descent)
}

func TestLookupRange(t *testing.T) {
	for _, c := range []rune{0, '\n', 31, 127, 0xE9, 0xFFFD} {
		m, ok := Lookup(c)
		assert.False(t, ok, "Lookup(%q)", c)
		assert.Equal(t, Metrics{}, m)
	}
	for c := rune(First); c <= Last; c++ {
		_, ok := Lookup(c)
		assert.True(t, ok, "Lookup(%q)", c)
	}
}

func TestReservedEntry(t *testing.T) {
	require.Len(t, dsc, Last-First+2)
	assert.Equal(t, Metrics{}, dsc[0])
}

func TestSpaceIsBlank(t *testing.T) {
	m, ok := Lookup(' ')
	require.True(t, ok)
	assert.Equal(t, 7, m.Advance())
	assert.Zero(t, m.BoxW)
	assert.Zero(t, m.BoxH)
	assert.Nil(t, Bitmap(m))
}

func TestMetricsFitLineBox(t *testing.T) {
	for c := rune(First + 1); c <= Last; c++ {
		m, _ := Lookup(c)
		assert.Equal(t, uint16(7*16), m.AdvW, "%q advance", c)
		require.NotZero(t, m.BoxW, "%q has no pixels", c)

		assert.GreaterOrEqual(t, int(m.OfsX), 0, "%q", c)
		assert.LessOrEqual(t, int(m.OfsX)+int(m.BoxW), basicfont.Face7x13.Width, "%q", c)
		assert.GreaterOrEqual(t, int(m.OfsY), -Descent, "%q", c)
		assert.LessOrEqual(t, int(m.OfsY)+int(m.BoxH), Ascent, "%q", c)
		assert.Len(t, Bitmap(m), (int(m.BoxW)*int(m.BoxH)+7)/8, "%q", c)
	}
}

// Decoding the packed bitmap at its offsets must reproduce the source mask.
func TestBitmapMatchesFace(t *testing.T) {
	f := basicfont.Face7x13
	for _, c := range "Ag|~0@_'" {
		m, _ := Lookup(c)
		bits := Bitmap(m)

		var got [Height][8]bool
		for row := 0; row < int(m.BoxH); row++ {
			for col := 0; col < int(m.BoxW); col++ {
				i := row*int(m.BoxW) + col
				if bits[i/8]&(0x80>>(i%8)) != 0 {
					// Top of the box is BoxH+OfsY above the baseline.
					y := Ascent - int(m.BoxH) - int(m.OfsY) + row
					got[y][int(m.OfsX)+col] = true
				}
			}
		}

		_, mask, mp, _, ok := f.Glyph(fixed.P(0, f.Ascent), c)
		require.True(t, ok)
		for y := 0; y < Height; y++ {
			for x := 0; x < f.Width; x++ {
				_, _, _, a := mask.At(mp.X+x, mp.Y+y).RGBA()
				assert.Equal(t, a >= 0x8000, got[y][x], "%q at (%d, %d)", c, x, y)
			}
		}
	}
}
