package image565

import "image/color"

// Color is a packed 16-bit RGB565 color.
type Color uint16

const (
	// Black is the all-zero color.
	Black Color = 0x0000
	// Transparent is reserved as "no background" for text rendering. It is
	// otherwise white.
	Transparent Color = 0xFFFF
)

// Per-channel lookup tables, 256 entries each. They hold the already shifted
// contribution of a channel so RGB is three loads and two ORs.
var (
	r5Table [256]uint16
	g6Table [256]uint16
	b5Table [256]uint16
)

func init() {
	for i := 0; i < 256; i++ {
		r5Table[i] = uint16(i>>3) << 11
		g6Table[i] = uint16(i>>2) << 5
		b5Table[i] = uint16(i >> 3)
	}
}

// RGB packs 8-bit channels into a Color.
//
// Each channel is truncated to its target width by a right shift, there is no
// rounding: red and blue keep their top 5 bits, green its top 6 bits.
func RGB(r, g, b uint8) Color {
	return Color(r5Table[r] | g6Table[g] | b5Table[b])
}

// rgbShift is the table-free form of RGB. Both must agree bit for bit.
func rgbShift(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA packs 8-bit channels with an alpha value into a Color.
//
// An alpha of 255 is the same as RGB and an alpha of 0 is Black. Any other
// alpha scales each channel by a/256 with an integer shift before packing.
// This is not true compositing: dividing by 256 instead of 255 biases results
// slightly dark, e.g. 255 at alpha 128 becomes 127 instead of 128.
func RGBA(r, g, b, a uint8) Color {
	switch a {
	case 0xFF:
		return RGB(r, g, b)
	case 0x00:
		return Black
	}
	r = uint8((uint16(r) * uint16(a)) >> 8)
	g = uint8((uint16(g) * uint16(a)) >> 8)
	b = uint8((uint16(b) * uint16(a)) >> 8)
	return RGB(r, g, b)
}

// Components returns the raw 5-bit red, 6-bit green and 5-bit blue fields.
// They are not expanded back to 8 bits.
func (c Color) Components() (r5, g6, b5 uint8) {
	return uint8(c>>11) & 0x1F, uint8(c>>5) & 0x3F, uint8(c) & 0x1F
}

// FromComponents assembles a Color from raw 5/6/5-bit fields. Out of range
// values are masked.
func FromComponents(r5, g6, b5 uint8) Color {
	return Color(uint16(r5&0x1F)<<11 | uint16(g6&0x3F)<<5 | uint16(b5&0x1F))
}

// RGBA implements color.Color.
//
// Fields are widened by bit replication so Black maps to 0 and 0xFFFF maps to
// full white.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5, g6, b5 := c.Components()
	r8 := uint32(r5<<3 | r5>>2)
	g8 := uint32(g6<<2 | g6>>4)
	b8 := uint32(b5<<3 | b5>>2)
	return r8 * 0x101, g8 * 0x101, b8 * 0x101, 0xFFFF
}

func toColor(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts colors to Color.
var Model = color.ModelFunc(toColor)
