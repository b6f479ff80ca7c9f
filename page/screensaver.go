package page

import (
	"image"

	"github.com/BeatGlow/pager/draw"
)

// Screensaver moves an image from side to side across the top of the display, one pixel per
// frame, turning around at the edges.
type Screensaver struct {
	src image.Image
	x   int
	dx  int
}

// NewScreensaver returns a screensaver bouncing src.
func NewScreensaver(src image.Image) *Screensaver {
	return &Screensaver{src: src, dx: 1}
}

func (p *Screensaver) Render(dst draw.Image) error {
	var (
		b    = dst.Bounds()
		size = p.src.Bounds().Size()
		at   = b.Min.Add(image.Pt(p.x, 0))
	)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(size)}, p.src, p.src.Bounds().Min, draw.Src)

	limit := b.Dx() - size.X
	if limit <= 0 {
		p.x = 0
		return nil
	}
	switch {
	case p.x <= 0:
		p.dx = 1
	case p.x >= limit:
		p.dx = -1
	}
	p.x += p.dx
	return nil
}
