package raster

import (
	"periph.io/x/devices/v3/ili9341/glyph"
	"periph.io/x/devices/v3/ili9341/image565"
)

// Placeholder glyph geometry, used for code points missing from the font.
const (
	placeholderW       = 10
	placeholderH       = 16
	placeholderAdvance = 14
)

// placeholderMark is the question mark inside the placeholder box, relative
// to the pen position on the baseline.
var placeholderMark = [...]struct{ dx, dy int }{
	{3, -14}, {4, -15}, {5, -15}, {6, -14},
	{7, -13}, {7, -12},
	{6, -11}, {5, -10}, {4, -9},
	{4, -8},
	{4, -6}, {4, -5},
}

// Text draws s with its first baseline at (x, y).
//
// '\n' moves the pen back to x and down one line; '\r' moves it back to x
// only. Every other rune is drawn by Char.
//
// The background is painted under the same rule as Char, one cell per rune.
func Text(img *image565.Image, s string, x, y int, fg, bg image565.Color) {
	penX := x
	for _, c := range s {
		switch c {
		case '\n':
			penX = x
			y += glyph.Height + glyph.LineGap
		case '\r':
			penX = x
		default:
			penX += Char(img, c, penX, y, fg, bg)
		}
	}
}

// Char draws c with its pen position on the baseline at (x, y) and returns
// the advance in pixels.
//
// The cell behind the glyph is painted with bg first unless bg is
// image565.Transparent or equal to fg, so text in a single color never turns
// into solid blocks. The cell is the advance width by the full line box,
// Ascent above the baseline and Descent below it.
//
// Runes outside the font draw a bordered box with a question mark and
// advance by 14 pixels. Its 10x16 box sits on the baseline; its background
// follows the same rule.
func Char(img *image565.Image, c rune, x, y int, fg, bg image565.Color) int {
	m, ok := glyph.Lookup(c)
	if !ok {
		placeholder(img, x, y, fg, bg)
		return placeholderAdvance
	}
	adv := m.Advance()
	if img.Released() {
		return adv
	}
	if paintsBackground(fg, bg) {
		Rectangle(img, x, y-glyph.Ascent, adv, glyph.Ascent+glyph.Descent, bg, true)
	}

	bits := glyph.Bitmap(m)
	if bits == nil {
		return adv
	}
	w, h := int(m.BoxW), int(m.BoxH)
	ox := x + int(m.OfsX)
	oy := y - h - int(m.OfsY)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := row*w + col
			if bits[i/8]&(0x80>>(i%8)) != 0 {
				img.SetRGB565(ox+col, oy+row, fg)
			}
		}
	}
	return adv
}

func paintsBackground(fg, bg image565.Color) bool {
	return bg != image565.Transparent && bg != fg
}

func placeholder(img *image565.Image, x, y int, fg, bg image565.Color) {
	top := y - placeholderH
	if paintsBackground(fg, bg) {
		Rectangle(img, x, top, placeholderW, placeholderH, bg, true)
	}
	Rectangle(img, x, top, placeholderW, placeholderH, fg, false)
	for _, p := range placeholderMark {
		Pixel(img, x+p.dx, y+p.dy, fg)
	}
}

// TextWidth returns the advance of s in pixels on a single line. Runes
// outside the font, '\n' and '\r' count as zero.
func TextWidth(s string) int {
	w := 0
	for _, c := range s {
		if m, ok := glyph.Lookup(c); ok {
			w += m.Advance()
		}
	}
	return w
}
