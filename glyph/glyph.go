// Package glyph holds the compiled-in bitmap font used for text on the panel.
//
// The table covers the printable ASCII range, ' ' through '~'. Each glyph has
// metrics and a tightly cropped monochrome bitmap packed row-major, most
// significant bit first, with no padding between rows:
//
//	bit index = row*BoxW + col
//	byte      = bitmap[bit index / 8]
//	mask      = 0x80 >> (bit index % 8)
//
// The data is derived once, at package initialization, from the X11
// misc-fixed 7x13 face shipped in golang.org/x/image/font/basicfont and is
// read-only afterwards.
package glyph

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Code point range present in the table.
const (
	First = ' '
	Last  = '~'
)

// Font geometry, in pixels.
const (
	Height  = 13 // Line height
	Ascent  = 11 // Baseline to top of the line box
	Descent = 2  // Baseline to bottom of the line box
	LineGap = 4  // Extra space between lines of text
)

// Metrics describes one glyph.
type Metrics struct {
	BitmapIndex uint16 // Offset of the glyph bitmap
	AdvW        uint16 // Advance width in 1/16 pixel
	BoxW, BoxH  uint8  // Bitmap size in pixels
	OfsX        int8   // Left edge relative to the pen position
	OfsY        int8   // Bottom edge above the baseline (negative: below)
}

// Advance returns the advance width in whole pixels, truncated.
func (m Metrics) Advance() int {
	return int(m.AdvW / 16)
}

var (
	// dsc[0] is reserved and never returned, lookups are offset by one.
	dsc     []Metrics
	bitmaps []byte
)

func init() {
	dsc, bitmaps = build(basicfont.Face7x13)
}

// Lookup returns the metrics for c. ok is false when c is outside the table;
// the zero Metrics is returned in that case.
func Lookup(c rune) (m Metrics, ok bool) {
	if c < First || c > Last {
		return Metrics{}, false
	}
	return dsc[c-First+1], true
}

// Bitmap returns the packed bitmap of a glyph returned by Lookup.
func Bitmap(m Metrics) []byte {
	n := (int(m.BoxW)*int(m.BoxH) + 7) / 8
	start := int(m.BitmapIndex)
	if n == 0 || start+n > len(bitmaps) {
		return nil
	}
	return bitmaps[start : start+n]
}

// build converts a fixed-size face into the metrics table and packed
// bitmaps.
func build(face *basicfont.Face) ([]Metrics, []byte) {
	table := make([]Metrics, 1, Last-First+2)
	var bits []byte

	// With the dot on the baseline at Ascent, the glyph rectangle starts at
	// y == 0 which makes mask rows and box rows line up.
	dot := fixed.P(0, face.Ascent)
	for c := rune(First); c <= Last; c++ {
		dr, mask, mp, adv, ok := face.Glyph(dot, c)
		m := Metrics{
			BitmapIndex: uint16(len(bits)),
			AdvW:        uint16(adv.Round() * 16),
		}
		if !ok {
			table = append(table, m)
			continue
		}

		set := func(x, y int) bool {
			_, _, _, a := mask.At(mp.X+x, mp.Y+y).RGBA()
			return a >= 0x8000
		}

		minX, minY, maxX, maxY := dr.Dx(), dr.Dy(), -1, -1
		for y := 0; y < dr.Dy(); y++ {
			for x := 0; x < dr.Dx(); x++ {
				if !set(x, y) {
					continue
				}
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
		if maxX < 0 {
			// Blank glyph (space): advance only.
			table = append(table, m)
			continue
		}

		w, h := maxX-minX+1, maxY-minY+1
		m.BoxW, m.BoxH = uint8(w), uint8(h)
		m.OfsX = int8(dr.Min.X + minX)
		m.OfsY = int8(face.Ascent - (minY + h))

		packed := make([]byte, (w*h+7)/8)
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				if set(minX+col, minY+row) {
					i := row*w + col
					packed[i/8] |= 0x80 >> (i % 8)
				}
			}
		}
		bits = append(bits, packed...)
		table = append(table, m)
	}
	return table, bits
}
