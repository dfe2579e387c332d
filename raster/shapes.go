package raster

import (
	"errors"
	"image"

	"periph.io/x/devices/v3/ili9341/image565"
)

// ErrPolygonFill is returned by Polygon when asked to fill. Only outlines are
// supported.
var ErrPolygonFill = errors.New("raster: filled polygons are not supported")

// Circle draws a circle of radius r centered on (cx, cy) with the midpoint
// algorithm. The filled variant joins each pair of symmetric points with a
// horizontal span. A radius of 0 or less draws nothing.
func Circle(img *image565.Image, cx, cy, r int, c image565.Color, filled bool) {
	if r <= 0 || img.Released() {
		return
	}
	x, y := 0, r
	d := 1 - r
	for x <= y {
		if filled {
			HLine(img, cx-x, cy+y, 2*x+1, c)
			HLine(img, cx-x, cy-y, 2*x+1, c)
			HLine(img, cx-y, cy+x, 2*y+1, c)
			HLine(img, cx-y, cy-x, 2*y+1, c)
		} else {
			img.SetRGB565(cx+x, cy+y, c)
			img.SetRGB565(cx-x, cy+y, c)
			img.SetRGB565(cx+x, cy-y, c)
			img.SetRGB565(cx-x, cy-y, c)
			img.SetRGB565(cx+y, cy+x, c)
			img.SetRGB565(cx-y, cy+x, c)
			img.SetRGB565(cx+y, cy-x, c)
			img.SetRGB565(cx-y, cy-x, c)
		}
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
}

// Polygon draws the closed outline through pts, joining each point to the
// next and the last back to the first. Fewer than three points draw nothing.
//
// Filling is not implemented: with filled set nothing is drawn and
// ErrPolygonFill is returned.
func Polygon(img *image565.Image, pts []image.Point, c image565.Color, filled bool) error {
	if len(pts) < 3 {
		return nil
	}
	if filled {
		return ErrPolygonFill
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		Line(img, p.X, p.Y, q.X, q.Y, c)
	}
	return nil
}
