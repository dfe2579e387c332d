// Package raster draws primitives into an image565.Image.
//
// Every function takes the target image first followed by explicit geometry
// and colors. There is no hidden state. Coordinates may lie anywhere: each
// written pixel is clipped to the image bounds individually, so shapes that
// are partly off-image render their visible part. Nothing in this package
// panics or reports out-of-range input, and drawing on a nil or released
// image is a no-op.
package raster

import (
	"image"
	"math/bits"

	"periph.io/x/devices/v3/ili9341/image565"
)

// Pixel sets a single pixel.
func Pixel(img *image565.Image, x, y int, c image565.Color) {
	if img.Released() {
		return
	}
	img.SetRGB565(x, y, c)
}

// HLine draws w pixels to the right of (x, y), (x, y) included.
func HLine(img *image565.Image, x, y, w int, c image565.Color) {
	if w <= 0 || img.Released() {
		return
	}
	row := img.Row(y, x, x+w)
	for i := range row {
		row[i] = uint16(c)
	}
}

// VLine draws h pixels down from (x, y), (x, y) included.
func VLine(img *image565.Image, x, y, h int, c image565.Color) {
	if h <= 0 || img.Released() {
		return
	}
	if x < img.Rect.Min.X || x >= img.Rect.Max.X {
		return
	}
	y0, y1 := max(y, img.Rect.Min.Y), min(y+h, img.Rect.Max.Y)
	for ; y0 < y1; y0++ {
		img.Pix[img.PixOffset(x, y0)] = uint16(c)
	}
}

// HLineGradient draws w pixels to the right of (x, y), interpolating each
// 5/6/5-bit channel linearly from c1 at the first pixel towards c2 at the
// last one. Steps are 16.16 fixed point, so the last pixel may fall short
// of c2 by one unit. A width of 1 draws c1.
func HLineGradient(img *image565.Image, x, y, w int, c1, c2 image565.Color) {
	if w <= 0 || img.Released() {
		return
	}
	if w == 1 {
		img.SetRGB565(x, y, c1)
		return
	}
	if y < img.Rect.Min.Y || y >= img.Rect.Max.Y {
		return
	}

	r1, g1, b1 := c1.Components()
	r2, g2, b2 := c2.Components()
	n := w - 1
	dr := ((int(r2) - int(r1)) << 16) / n
	dg := ((int(g2) - int(g1)) << 16) / n
	db := ((int(b2) - int(b1)) << 16) / n
	r, g, b := int(r1)<<16, int(g1)<<16, int(b1)<<16

	// Advance past the clipped left part without plotting.
	i := 0
	if x < img.Rect.Min.X {
		i = img.Rect.Min.X - x
		r, g, b = r+i*dr, g+i*dg, b+i*db
	}
	end := min(w, img.Rect.Max.X-x)
	for ; i < end; i++ {
		img.Pix[img.PixOffset(x+i, y)] = uint16(pack(r, g, b))
		r, g, b = r+dr, g+dg, b+db
	}
}

// pack converts 16.16 channel accumulators into a Color, clamping each
// channel to its field width.
func pack(r, g, b int) image565.Color {
	return image565.FromComponents(
		uint8(clamp(r>>16, 0x1F)),
		uint8(clamp(g>>16, 0x3F)),
		uint8(clamp(b>>16, 0x1F)),
	)
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}

// Line draws a line from (x0, y0) to (x1, y1), both ends included, with
// Bresenham's algorithm. Axis-aligned lines are drawn as spans. The cost is
// bounded by the image size however far off-image the ends are.
func Line(img *image565.Image, x0, y0, x1, y1 int, c image565.Color) {
	if img.Released() {
		return
	}
	switch {
	case y0 == y1:
		HLine(img, min(x0, x1), y0, abs(x1-x0)+1, c)
		return
	case x0 == x1:
		VLine(img, x0, min(y0, y1), abs(y1-y0)+1, c)
		return
	}

	// The major axis moves one cell per step, so only the steps whose major
	// coordinate lands inside the image are visited.
	dx, sx := abs(x1-x0), sign(x1-x0)
	dy, sy := abs(y1-y0), sign(y1-y0)
	if dx >= dy {
		k0, k1 := stepRange(x0, sx, dx, img.Rect.Min.X, img.Rect.Max.X)
		for k := k0; k <= k1; k++ {
			img.SetRGB565(x0+k*sx, y0+sy*minorStep(k, dx, dy), c)
		}
		return
	}
	k0, k1 := stepRange(y0, sy, dy, img.Rect.Min.Y, img.Rect.Max.Y)
	for k := k0; k <= k1; k++ {
		img.SetRGB565(x0+sx*minorStep(k, dy, dx), y0+k*sy, c)
	}
}

// stepRange returns the steps k in [0, n] for which p+k*s lies in [lo, hi).
// The range is empty when k0 > k1.
func stepRange(p, s, n, lo, hi int) (k0, k1 int) {
	if s > 0 {
		return max(0, lo-p), min(n, hi-1-p)
	}
	return max(0, p-hi+1), min(n, p-lo)
}

// minorStep returns the minor axis offset at step k of a line spanning major
// by minor cells: k*minor/major rounded half up, which is where Bresenham's
// error term puts it. The product is taken in 128 bits.
func minorStep(k, major, minor int) int {
	hi, lo := bits.Mul64(uint64(k), 2*uint64(minor))
	lo, carry := bits.Add64(lo, uint64(major), 0)
	q, _ := bits.Div64(hi+carry, lo, 2*uint64(major))
	return int(q)
}

// Rectangle draws a w by h rectangle with its top-left corner at (x, y),
// outlined or filled.
func Rectangle(img *image565.Image, x, y, w, h int, c image565.Color, filled bool) {
	if w <= 0 || h <= 0 || img.Released() {
		return
	}
	if filled {
		r := image.Rect(x, y, x+w, y+h).Intersect(img.Rect)
		for yy := r.Min.Y; yy < r.Max.Y; yy++ {
			HLine(img, r.Min.X, yy, r.Dx(), c)
		}
		return
	}
	HLine(img, x, y, w, c)
	HLine(img, x, y+h-1, w, c)
	VLine(img, x, y, h, c)
	VLine(img, x+w-1, y, h, c)
}

// Bitmap copies a w by h block of RGB565 pixels, row-major in src, with its
// top-left corner at (x, y). Pixels outside the image are skipped. Nothing is
// drawn when src holds fewer than w*h pixels.
func Bitmap(img *image565.Image, x, y int, src []uint16, w, h int) {
	if w <= 0 || h <= 0 || len(src) < w*h || img.Released() {
		return
	}
	for row := 0; row < h; row++ {
		dst := img.Row(y+row, x, x+w)
		if dst == nil {
			continue
		}
		off := row*w + max(img.Rect.Min.X-x, 0)
		copy(dst, src[off:off+len(dst)])
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
