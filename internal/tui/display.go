// Package tui simulates a monochrome display in the terminal and maps keys to page navigation.
package tui

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/BeatGlow/pager/display"
	"github.com/BeatGlow/pager/pixel"
)

// Display is an in-memory [display.Display] whose Refresh renders the frame buffer as text, two
// pixel rows per line. Only the latest frame is kept for the viewer; frames it has not picked up
// yet are replaced.
type Display struct {
	mu       sync.Mutex
	buf      *pixel.MonoImage
	width    int
	height   int
	rotation display.Rotation
	on       bool
	closed   bool
	frames   chan string
}

var _ display.Display = (*Display)(nil)

// New returns a switched off width×height display.
func New(width, height int, rotation display.Rotation) *Display {
	return &Display{
		buf:      pixel.NewMonoImage(width, height),
		width:    width,
		height:   height,
		rotation: rotation % 4,
		frames:   make(chan string, 1),
	}
}

// Frames delivers rendered frames. The channel is closed by Close.
func (d *Display) Frames() <-chan string {
	return d.frames
}

func (d *Display) String() string {
	return "terminal"
}

func (d *Display) Bounds() image.Rectangle {
	return d.rotation.Bounds(d.width, d.height)
}

func (d *Display) ColorModel() color.Model {
	return pixel.MonoModel
}

func (d *Display) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(d.Bounds()) {
		return color.Transparent
	}
	return d.buf.At(d.rotation.Transform(x, y, d.width, d.height))
}

func (d *Display) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(d.Bounds()) {
		return
	}
	x, y = d.rotation.Transform(x, y, d.width, d.height)
	d.buf.Set(x, y, c)
}

func (d *Display) Clear() {
	d.buf.Clear()
}

func (d *Display) Show(show bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return display.ErrClosed
	}
	d.on = show
	return nil
}

// SetContrast is accepted and ignored.
func (d *Display) SetContrast(uint8) error {
	return nil
}

func (d *Display) SetRotation(rotation display.Rotation) error {
	d.rotation = rotation % 4
	return nil
}

// Refresh renders the frame buffer and hands it to the viewer. A display that is switched off
// renders blank.
func (d *Display) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return display.ErrClosed
	}

	var frame string
	if d.on {
		frame = Render(d.buf)
	} else {
		frame = Render(image.NewGray(d.buf.Bounds()))
	}

	select {
	case <-d.frames:
	default:
	}
	d.frames <- frame
	return nil
}

func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		d.on = false
		close(d.frames)
	}
	return nil
}

// Render draws img with half block characters: each line of text holds two rows of pixels.
func Render(img image.Image) string {
	var (
		b  = img.Bounds()
		sb strings.Builder
	)
	lit := func(x, y int) bool {
		if y >= b.Max.Y {
			return false
		}
		return pixel.MonoModel.Convert(img.At(x, y)).(pixel.Mono).On
	}
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			switch top, bottom := lit(x, y), lit(x, y+1); {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
	}
	return sb.String()
}
