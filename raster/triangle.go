package raster

import "periph.io/x/devices/v3/ili9341/image565"

// Triangle draws the outline of the triangle (x1, y1), (x2, y2), (x3, y3).
func Triangle(img *image565.Image, x1, y1, x2, y2, x3, y3 int, c image565.Color) {
	Line(img, x1, y1, x2, y2, c)
	Line(img, x2, y2, x3, y3, c)
	Line(img, x3, y3, x1, y1, c)
}

// TriangleFilled fills the triangle (x1, y1), (x2, y2), (x3, y3) one scanline
// at a time. When all three vertices share a row, a single span covering
// their full X extent is drawn.
func TriangleFilled(img *image565.Image, x1, y1, x2, y2, x3, y3 int, c image565.Color) {
	if img.Released() {
		return
	}
	v := [3]vertex{{x1, y1, c}, {x2, y2, c}, {x3, y3, c}}
	scanTriangle(img, v, func(y, xl, xr int, _, _ image565.Color) {
		HLine(img, xl, y, xr-xl+1, c)
	})
}

// TriangleGradient fills the triangle (x1, y1), (x2, y2), (x3, y3) with each
// 5/6/5-bit channel interpolated between the vertex colors, down both active
// edges and then across each scanline. It covers exactly the pixels
// TriangleFilled covers for the same vertices.
//
// When all three vertices share a row, a single span is drawn from the color
// of the leftmost vertex to the color of the rightmost one.
func TriangleGradient(img *image565.Image, x1, y1 int, c1 image565.Color, x2, y2 int, c2 image565.Color, x3, y3 int, c3 image565.Color) {
	if img.Released() {
		return
	}
	v := [3]vertex{{x1, y1, c1}, {x2, y2, c2}, {x3, y3, c3}}
	scanTriangle(img, v, func(y, xl, xr int, cl, cr image565.Color) {
		HLineGradient(img, xl, y, xr-xl+1, cl, cr)
	})
}

type vertex struct {
	x, y int
	c    image565.Color
}

// edge walks X and the three color channels along one triangle edge in 16.16
// fixed point.
type edge struct {
	x, r, g, b     int
	dx, dr, dg, db int
}

// newEdge starts an edge at a and steps it towards b once per scanline. A
// zero height edge does not move.
func newEdge(a, b vertex) edge {
	ra, ga, ba := a.c.Components()
	e := edge{x: a.x << 16, r: int(ra) << 16, g: int(ga) << 16, b: int(ba) << 16}
	dy := b.y - a.y
	if dy == 0 {
		return e
	}
	rb, gb, bb := b.c.Components()
	e.dx = ((b.x - a.x) << 16) / dy
	e.dr = ((int(rb) - int(ra)) << 16) / dy
	e.dg = ((int(gb) - int(ga)) << 16) / dy
	e.db = ((int(bb) - int(ba)) << 16) / dy
	return e
}

func (e *edge) step() {
	e.x += e.dx
	e.r += e.dr
	e.g += e.dg
	e.b += e.db
}

// advance moves the edge k scanlines at once, landing where k calls to step
// would.
func (e *edge) advance(k int) {
	e.x += e.dx * k
	e.r += e.dr * k
	e.g += e.dg * k
	e.b += e.db * k
}

func (e *edge) color() image565.Color {
	return pack(e.r, e.g, e.b)
}

// sortByY orders the vertices by ascending Y with three compare-and-swaps.
// Vertices on the same row keep their relative order.
func sortByY(v *[3]vertex) {
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].y > v[2].y {
		v[1], v[2] = v[2], v[1]
		if v[0].y > v[1].y {
			v[0], v[1] = v[1], v[0]
		}
	}
}

// scanTriangle calls span for every scanline of the triangle with the
// inclusive span [xl, xr] and the colors at both ends.
//
// The long edge runs from the top vertex to the bottom one. The short edge
// runs from the top to the middle vertex for the rows above the middle one,
// then restarts at the middle vertex and runs to the bottom.
func scanTriangle(img *image565.Image, v [3]vertex, span func(y, xl, xr int, cl, cr image565.Color)) {
	sortByY(&v)
	top, mid, bot := v[0], v[1], v[2]

	if top.y == bot.y {
		lo, hi := top, top
		for _, p := range v[1:] {
			if p.x < lo.x {
				lo = p
			}
			if p.x > hi.x {
				hi = p
			}
		}
		span(top.y, lo.x, hi.x, lo.c, hi.c)
		return
	}

	minY, maxY := img.Rect.Min.Y, img.Rect.Max.Y
	long := newEdge(top, bot)
	short := newEdge(top, mid)

	emit := func(y int) {
		xl, xr := long.x>>16, short.x>>16
		cl, cr := long.color(), short.color()
		if xl > xr {
			xl, xr = xr, xl
			cl, cr = cr, cl
		}
		span(y, xl, xr, cl, cr)
	}

	// Rows above the image are skipped without walking them.
	y := top.y
	if y < minY {
		k := min(minY, mid.y) - y
		long.advance(k)
		short.advance(k)
		y += k
	}
	for ; y < mid.y && y < maxY; y++ {
		emit(y)
		long.step()
		short.step()
	}
	if y >= maxY {
		return
	}
	short = newEdge(mid, bot)
	if y < minY {
		k := min(minY, bot.y+1) - y
		long.advance(k)
		short.advance(k)
		y += k
	}
	for ; y <= bot.y && y < maxY; y++ {
		emit(y)
		long.step()
		short.step()
	}
}
