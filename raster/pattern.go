package raster

import "periph.io/x/devices/v3/ili9341/image565"

// TestPattern clears img to black and draws a calibration pattern: a 50x50
// block in each corner (green, red, blue and brown with a magenta inset) and,
// between them, four vertical bars ramping red, green and blue from black at
// the top to full at the bottom followed by a hue sweep.
func TestPattern(img *image565.Image) {
	if img.Released() {
		return
	}
	img.Fill(image565.Black)

	r := img.Rect
	Rectangle(img, r.Min.X, r.Min.Y, 50, 50, image565.RGB(0, 255, 0), true)
	Rectangle(img, r.Min.X, r.Max.Y-50, 50, 50, image565.RGB(0, 0, 255), true)
	Rectangle(img, r.Max.X-50, r.Min.Y, 50, 50, image565.RGB(255, 0, 0), true)
	Rectangle(img, r.Max.X-50, r.Max.Y-50, 50, 50, image565.RGB(150, 75, 0), true)
	Rectangle(img, r.Max.X-50, r.Max.Y-50, 25, 25, image565.RGB(255, 0, 255), true)

	bar := (r.Dx() - 100) / 4
	if bar <= 0 {
		return
	}
	x0 := r.Min.X + 50
	h := r.Dy()
	for i := 0; i < h; i++ {
		y := r.Min.Y + i
		c := uint8(i * 255 / h)
		HLine(img, x0, y, bar, image565.RGB(c, 0, 0))
		HLine(img, x0+bar, y, bar, image565.RGB(0, c, 0))
		HLine(img, x0+2*bar, y, bar, image565.RGB(0, 0, c))
		HLine(img, x0+3*bar, y, bar, hue((h-i)*6*255/h))
	}
}

// hue maps h in [0, 6*255] onto the saturated color wheel, starting at red.
func hue(h int) image565.Color {
	sector, f := (h/255)%6, uint8(h%255)
	switch sector {
	case 0:
		return image565.RGB(255, f, 0)
	case 1:
		return image565.RGB(255-f, 255, 0)
	case 2:
		return image565.RGB(0, 255, f)
	case 3:
		return image565.RGB(0, 255-f, 255)
	case 4:
		return image565.RGB(f, 0, 255)
	default:
		return image565.RGB(255, 0, 255-f)
	}
}
