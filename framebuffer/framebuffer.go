// Package framebuffer drives monochrome displays the kernel exposes as a framebuffer device,
// such as OLEDs bound to the fbtft drivers (fb_ssd1306, fb_sh1106).
//
// Drawing happens in a 1-bit back buffer; Refresh converts it to the device's pixel format.
// Setting the contrast is not supported by fbdev and is a no-op.
package framebuffer

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/pager/pixel"
)

// Errors
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrFormat       = errors.New("framebuffer: unsupported pixel format")
)

// encode writes src into dst, a device buffer of bpp bits per pixel with stride bytes per
// line. Lit pixels become all ones, dark pixels all zeros; 1 bpp lines are packed most
// significant bit first.
func encode(dst []byte, src *pixel.MonoImage, bpp, stride int) error {
	var (
		b     = src.Bounds()
		bytes = bpp / 8
	)
	switch bpp {
	case 1, 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits per pixel", ErrFormat, bpp)
	}
	if need := (b.Dy()-1)*stride + (b.Dx()*bpp+7)/8; b.Dy() > 0 && len(dst) < need {
		return fmt.Errorf("framebuffer: buffer of %d bytes too small, need %d", len(dst), need)
	}

	for y := 0; y < b.Dy(); y++ {
		line := dst[y*stride:]
		for x := 0; x < b.Dx(); x++ {
			on := src.At(b.Min.X+x, b.Min.Y+y) == pixel.On
			if bpp == 1 {
				mask := byte(0x80) >> uint(x&7)
				if on {
					line[x/8] |= mask
				} else {
					line[x/8] &^= mask
				}
				continue
			}
			var v byte
			if on {
				v = 0xff
			}
			for i := x * bytes; i < (x+1)*bytes; i++ {
				line[i] = v
			}
		}
	}
	return nil
}
