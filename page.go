package pager

import (
	"time"

	"github.com/BeatGlow/pager/draw"
)

// DefaultFramesPerSecond is the frame rate of pages that do not declare one.
const DefaultFramesPerSecond = 24

// Page is a unit of content that can be rotated onto the display.
//
// Render draws one frame. It is called with a cleared surface as often per second as the page
// asks for through [FrameRater], and may keep state between calls to animate.
//
// A page may additionally implement [Activator] and [Deactivator] to be told when it is rotated
// in and out.
type Page interface {
	Render(dst draw.Image) error
}

// Activator is implemented by pages that prepare state before their first frame.
type Activator interface {
	Activated() error
}

// Deactivator is implemented by pages that release or reset state after their last frame.
type Deactivator interface {
	Deactivated() error
}

// FrameRater is implemented by pages that want a frame rate other than
// [DefaultFramesPerSecond]. Zero is treated as the default.
type FrameRater interface {
	FramesPerSecond() uint8
}

// PageFunc adapts a render function to a [Page].
type PageFunc func(dst draw.Image) error

func (f PageFunc) Render(dst draw.Image) error {
	return f(dst)
}

func framesPerSecond(p Page) uint8 {
	if r, ok := p.(FrameRater); ok {
		if fps := r.FramesPerSecond(); fps > 0 {
			return fps
		}
	}
	return DefaultFramesPerSecond
}

// FrameInterval is the time between two frames at fps frames per second, in whole milliseconds.
// A zero rate yields the interval of [DefaultFramesPerSecond].
func FrameInterval(fps uint8) time.Duration {
	if fps == 0 {
		fps = DefaultFramesPerSecond
	}
	return time.Duration(1000/int(fps)) * time.Millisecond
}

func activate(p Page) error {
	if a, ok := p.(Activator); ok {
		return a.Activated()
	}
	return nil
}

func deactivate(p Page) error {
	if d, ok := p.(Deactivator); ok {
		return d.Deactivated()
	}
	return nil
}
