package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/pager/draw"
)

// Image is a frame buffer that can be cleared and filled in one go.
type Image interface {
	draw.Image

	// Clear turns all pixels off.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the packed pixel bytes shared by the image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the packed pixels.
	Pix []byte

	// Stride is the distance in bytes between two vertically adjacent bytes of Pix.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

func (p *Buffer) fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoImage is a 1-bit per pixel image with horizontally packed rows, least significant bit
// first.
type MonoImage struct {
	Buffer
}

// NewMonoImage allocates a w×h image.
func NewMonoImage(w, h int) *MonoImage {
	stride := (w + 7) / 8
	return &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) offset(x, y int) (int, byte) {
	return y*p.Stride + x/8, byte(1) << uint(x&7)
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	pos, bit := p.offset(x, y)
	return Mono{On: p.Pix[pos]&bit != 0}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	pos, bit := p.offset(x, y)
	if monoModel(c).(Mono).On {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoImage) Fill(c color.Color) {
	p.fill(c)
}

// MonoVerticalLSBImage is a 1-bit per pixel image organised in horizontal bands ("pages") of 8
// rows, where each byte is a column of 8 pixels with the top pixel in the least significant bit.
//
// This is the native memory layout of the SSD1305, SSD1306 and SH1106 controllers, so Pix can be
// sent to the display band by band without conversion.
type MonoVerticalLSBImage struct {
	Buffer
}

// NewMonoVerticalLSBImage allocates a w×h image, rounding h up to whole bands.
func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	bands := (h + 7) / 8
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, bands*w),
	}
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoVerticalLSBImage) offset(x, y int) (int, byte) {
	return y/8*p.Stride + x, byte(1) << uint(y&7)
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	pos, bit := p.offset(x, y)
	return Mono{On: p.Pix[pos]&bit != 0}
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	pos, bit := p.offset(x, y)
	if monoModel(c).(Mono).On {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	p.fill(c)
}

// Band returns the bytes of the n-th band of 8 rows.
func (p *MonoVerticalLSBImage) Band(n int) []byte {
	off := n * p.Stride
	return p.Pix[off : off+p.Stride]
}

// Lit counts the pixels that are on.
func Lit(img image.Image) (n int) {
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if monoModel(img.At(x, y)).(Mono).On {
				n++
			}
		}
	}
	return
}
