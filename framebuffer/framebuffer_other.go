//go:build !linux

package framebuffer

import "github.com/BeatGlow/pager/display"

// Open fails on platforms without fbdev.
func Open(_ string, _ display.Rotation) (display.Display, error) {
	return nil, ErrNotSupported
}
