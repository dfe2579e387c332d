package image565

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxPixels bounds the size of a single Image. It covers a full frame in
// either panel orientation with room for a square 320x320 layout.
const MaxPixels = 320 * 320

// ErrAllocation is returned by New when the requested buffer cannot be
// provided.
var ErrAllocation = errors.New("image565: cannot allocate buffer")

// Image is an RGB565 image with one uint16 per pixel in row-major order.
//
// Pix is exported so callers can fill it in bulk and so it can be streamed to
// the panel directly.
type Image struct {
	Pix    []uint16        // Pixel data, Stride words per row
	Stride int             // Words per row
	Rect   image.Rectangle // Image bounds
}

// New allocates a zero (black) image with the given bounds.
//
// It fails with ErrAllocation when the rectangle is empty or larger than
// MaxPixels. A failed allocation only affects this buffer; the caller may
// retry with a smaller one.
func New(r image.Rectangle) (*Image, error) {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrAllocation, r)
	}
	if w > MaxPixels/h {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, w, h, MaxPixels)
	}
	return &Image{
		Pix:    make([]uint16, w*h),
		Stride: w,
		Rect:   r,
	}, nil
}

// Release drops the pixel storage. The image is empty afterwards and every
// draw on it is a no-op. Calling Release more than once is harmless.
func (p *Image) Release() {
	if p == nil {
		return
	}
	p.Pix = nil
	p.Stride = 0
	p.Rect = image.Rectangle{}
}

// Released reports whether the image no longer owns pixel storage.
func (p *Image) Released() bool {
	return p == nil || p.Pix == nil
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the Color of the pixel at (x, y), or Black when out of
// bounds.
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	return Color(p.Pix[p.PixOffset(x, y)])
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = uint16(Model.Convert(c).(Color))
}

// SetRGB565 sets the Color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = uint16(c)
}

// PixOffset returns the index of the word holding the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

// Fill sets every pixel to c.
func (p *Image) Fill(c Color) {
	if len(p.Pix) == 0 {
		return
	}
	// Doubling copy keeps this a handful of memmoves instead of a word loop.
	p.Pix[0] = uint16(c)
	for n := 1; n < len(p.Pix); n *= 2 {
		copy(p.Pix[n:], p.Pix[:n])
	}
}

// Row returns the words of row y clipped to [x0, x1), or nil when the span
// does not intersect the image.
func (p *Image) Row(y, x0, x1 int) []uint16 {
	if y < p.Rect.Min.Y || y >= p.Rect.Max.Y {
		return nil
	}
	if x0 < p.Rect.Min.X {
		x0 = p.Rect.Min.X
	}
	if x1 > p.Rect.Max.X {
		x1 = p.Rect.Max.X
	}
	if x0 >= x1 {
		return nil
	}
	i := p.PixOffset(x0, y)
	return p.Pix[i : i+(x1-x0)]
}
