package pixel

import "image/color"

// MonoModel converts any color to [Mono] using its luminance.
var MonoModel color.Model = color.ModelFunc(monoModel)

// The two monochrome colors.
var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

// Invert returns the opposite color.
func (c Mono) Invert() Mono {
	return Mono{On: !c.On}
}

func monoModel(c color.Color) color.Color {
	if m, ok := c.(Mono); ok {
		return m
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		// Mostly transparent pixels do not light up a segment.
		return Off
	}

	// JFIF luma coefficients, 19595 + 38470 + 7471 == 1<<16. Shifting by 31 keeps the top bit of
	// the 16-bit luminance: lit from half brightness upwards.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}
