package page

import (
	"fmt"
	"image"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/pager/draw"
	"github.com/BeatGlow/pager/pixel"
)

// DefaultFace is the 7×13 bitmap face used by text pages without a face of their own.
var DefaultFace font.Face = basicfont.Face7x13

// TrueTypeFace parses a TrueType font and returns a face of size points at 72 DPI.
func TrueTypeFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("page: parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// MonoFace returns the Go Mono face of size points.
func MonoFace(size float64) (font.Face, error) {
	return TrueTypeFace(gomono.TTF, size)
}

// TextOption configures a [Text] or [Dynamic] page.
type TextOption func(*textStyle)

// WithFace sets the font face.
func WithFace(face font.Face) TextOption {
	return func(s *textStyle) {
		if face != nil {
			s.face = face
		}
	}
}

// WithFramesPerSecond sets the frame rate of a [Text] page or how often a [Dynamic] page asks
// for its text.
func WithFramesPerSecond(fps uint8) TextOption {
	return func(s *textStyle) {
		s.fps = fps
	}
}

type textStyle struct {
	face font.Face
	fps  uint8
}

func newTextStyle(fps uint8, options []TextOption) textStyle {
	s := textStyle{face: DefaultFace, fps: fps}
	for _, option := range options {
		option(&s)
	}
	return s
}

// drawText draws s line by line from the top left corner of dst, the first baseline one ascent
// below the top.
func (s textStyle) drawText(dst draw.Image, text string) {
	var (
		b       = dst.Bounds()
		metrics = s.face.Metrics()
		d       = font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(pixel.On),
			Face: s.face,
		}
	)
	baseline := fixed.I(b.Min.Y) + metrics.Ascent
	for _, line := range strings.Split(text, "\n") {
		if baseline.Ceil()-metrics.Ascent.Ceil() >= b.Max.Y {
			return
		}
		d.Dot = fixed.Point26_6{X: fixed.I(b.Min.X), Y: baseline}
		d.DrawString(line)
		baseline += metrics.Height
	}
}

// Text shows a fixed text. It redraws once per second.
type Text struct {
	text  string
	style textStyle
}

// NewText returns a page showing text; newlines start a new line.
func NewText(text string, options ...TextOption) *Text {
	return &Text{
		text:  text,
		style: newTextStyle(1, options),
	}
}

func (p *Text) Render(dst draw.Image) error {
	p.style.drawText(dst, p.text)
	return nil
}

func (p *Text) FramesPerSecond() uint8 {
	return p.style.fps
}

// Dynamic shows a text that is produced anew for every frame, 24 times a second by default.
type Dynamic struct {
	text  func() string
	style textStyle
}

// NewDynamic returns a page showing whatever text returns at the time of the frame.
func NewDynamic(text func() string, options ...TextOption) *Dynamic {
	return &Dynamic{
		text:  text,
		style: newTextStyle(24, options),
	}
}

func (p *Dynamic) Render(dst draw.Image) error {
	p.style.drawText(dst, p.text())
	return nil
}

func (p *Dynamic) FramesPerSecond() uint8 {
	return p.style.fps
}
