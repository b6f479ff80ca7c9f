package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points, both inclusive.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// Polyline draws connected line segments through points.
func Polyline(dst Image, points []image.Point, c color.Color) {
	switch len(points) {
	case 0:
		return
	case 1:
		dst.Set(points[0].X, points[0].Y, c)
		return
	}
	for i := 1; i < len(points); i++ {
		Line(dst, points[i-1], points[i], c)
	}
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	for i := 0; i < w; i++ {
		dst.Set(x+i, y, c)
	}
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	for i := 0; i < h; i++ {
		dst.Set(x, y+i, c)
	}
}

// Rectangle draws the 1 pixel outline of rect. Max is exclusive, like everywhere in [image].
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	StrokeRectangle(dst, rect, 1, c)
}

// StrokeRectangle draws an outline of width pixels on the inside of rect.
func StrokeRectangle(dst Image, rect image.Rectangle, width int, c color.Color) {
	rect = rect.Canon()
	for i := 0; i < width; i++ {
		r := rect.Inset(i)
		if r.Empty() {
			return
		}
		w, h := r.Dx(), r.Dy()
		HorizontalLine(dst, r.Min.X, r.Min.Y, w, c)
		HorizontalLine(dst, r.Min.X, r.Max.Y-1, w, c)
		VerticalLine(dst, r.Min.X, r.Min.Y, h, c)
		VerticalLine(dst, r.Max.X-1, r.Min.Y, h, c)
	}
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, rect.Dx(), c)
	}
}

// RoundedRectangle draws a rectangle outline with radius pixels rounded corners.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	var (
		r = clampRadius(rect, radius)
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	HorizontalLine(dst, x+r, y, w-2*r, c)
	HorizontalLine(dst, x+r, y+h-1, w-2*r, c)
	VerticalLine(dst, x, y+r, h-2*r, c)
	VerticalLine(dst, x+w-1, y+r, h-2*r, c)
	corners(dst, x+r, y+r, x+w-1-r, y+h-1-r, r, false, c)
}

// RoundedBox draws a filled rectangle with radius pixels rounded corners.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	var (
		r = clampRadius(rect, radius)
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	Box(dst, image.Rect(x, y+r, x+w, y+h-r), c)
	corners(dst, x+r, y+r, x+w-1-r, y+h-1-r, r, true, c)
}

func clampRadius(rect image.Rectangle, radius int) int {
	if m := min(rect.Dx(), rect.Dy()) / 2; radius > m {
		radius = m
	}
	return max(radius, 0)
}

// corners draws the four quarter circles of a rounded rectangle using the midpoint circle
// algorithm; (x0,y0) is the top left and (x1,y1) the bottom right corner center. With fill set
// the top and bottom caps are filled in with horizontal spans.
func corners(dst Image, x0, y0, x1, y1, radius int, fill bool, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	plot := func(dx, dy int) {
		if fill {
			HorizontalLine(dst, x0-dx, y0-dy, x1-x0+2*dx+1, c)
			HorizontalLine(dst, x0-dx, y1+dy, x1-x0+2*dx+1, c)
			return
		}
		dst.Set(x0-dx, y0-dy, c)
		dst.Set(x1+dx, y0-dy, c)
		dst.Set(x0-dx, y1+dy, c)
		dst.Set(x1+dx, y1+dy, c)
	}
	plot(0, y)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx
		plot(x, y)
		plot(y, x)
	}
}

// bresenham plots the integer line from (x1,y1) to (x2,y2) in any octant.
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		dst.Set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
