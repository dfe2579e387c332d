package ili9341

import (
	"image/color"

	"periph.io/x/devices/v3/ili9341/image565"
	"tinygo.org/x/drivers"
)

// Canvas exposes an image and the device it is shown on as a
// drivers.Displayer, so drawing code written for TinyGo displays (tinydraw,
// tinyfont, tinyterm) can target the panel.
type Canvas struct {
	dev *Dev
	img *image565.Image
}

var _ drivers.Displayer = (*Canvas)(nil)

// Canvas returns a Canvas over img. Display sends img with its top-left corner
// at img.Bounds().Min.
func (d *Dev) Canvas(img *image565.Image) *Canvas {
	return &Canvas{dev: d, img: img}
}

// Image returns the underlying image.
func (c *Canvas) Image() *image565.Image {
	return c.img
}

// Size implements drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	if c.img.Released() {
		return 0, 0
	}
	return int16(c.img.Rect.Dx()), int16(c.img.Rect.Dy())
}

// SetPixel implements drivers.Displayer. Coordinates are relative to the
// image origin. Alpha is applied with image565.RGBA.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if c.img.Released() {
		return
	}
	p := c.img.Rect.Min
	c.img.SetRGB565(p.X+int(x), p.Y+int(y), image565.RGBA(col.R, col.G, col.B, col.A))
}

// Display implements drivers.Displayer.
func (c *Canvas) Display() error {
	if c.img.Released() {
		return nil
	}
	return c.dev.DrawBuffer(c.img.Rect.Min.X, c.img.Rect.Min.Y, c.img)
}
