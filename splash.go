package pager

import (
	"context"
	"image"
	"time"

	"github.com/BeatGlow/pager/draw"
	"github.com/BeatGlow/pager/pixel"
)

var (
	splashBracketLeft  = []image.Point{{2, 0}, {0, 0}, {0, 15}, {2, 15}}
	splashBracketRight = []image.Point{{0, 0}, {2, 0}, {2, 15}, {0, 15}}
	splashSize         = image.Pt(34, 18)
)

// splash shows the logo, two brackets either side of a bold square, for the splash duration.
func (r *Rotator) splash(ctx context.Context) error {
	r.surface.Clear()
	if err := r.surface.Refresh(); err != nil {
		return err
	}

	drawSplash(r.surface)
	if err := r.surface.Refresh(); err != nil {
		return err
	}

	if r.splashDuration <= 0 {
		return nil
	}
	t := time.NewTimer(r.splashDuration)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func drawSplash(dst draw.Image) {
	var (
		b      = dst.Bounds()
		origin = b.Min.Add(b.Size().Sub(splashSize).Div(2))
		// brackets are 16 pixels high, centered on the 18 pixel square
		bracket = origin.Add(image.Pt(0, 1))
	)
	polyline := func(points []image.Point, dx int) {
		moved := make([]image.Point, len(points))
		for i, p := range points {
			moved[i] = p.Add(bracket).Add(image.Pt(dx, 0))
		}
		draw.Polyline(dst, moved, pixel.On)
	}

	polyline(splashBracketLeft, 0)
	polyline(splashBracketLeft, 4)
	draw.StrokeRectangle(dst, image.Rectangle{Min: origin.Add(image.Pt(8, 0)), Max: origin.Add(image.Pt(26, 18))}, 3, pixel.On)
	polyline(splashBracketRight, 27)
	polyline(splashBracketRight, 31)
}
