package page

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/BeatGlow/pager/draw"
)

// HorizontalAlignment of an image on the display.
type HorizontalAlignment uint8

const (
	Center HorizontalAlignment = iota
	Left
	Right
)

// VerticalAlignment of an image on the display.
type VerticalAlignment uint8

const (
	Middle VerticalAlignment = iota
	Top
	Bottom
)

// ParseAlignment parses "<horizontal> <vertical>" alignments such as "right bottom" or "center";
// a missing part means centered.
func ParseAlignment(s string) (h HorizontalAlignment, v VerticalAlignment, err error) {
	for _, part := range strings.Fields(strings.ToLower(s)) {
		switch part {
		case "left":
			h = Left
		case "right":
			h = Right
		case "top":
			v = Top
		case "bottom":
			v = Bottom
		case "center", "centre", "middle":
		default:
			return 0, 0, fmt.Errorf("page: invalid alignment %q", part)
		}
	}
	return
}

// DecodeBMP decodes a BMP image.
func DecodeBMP(data []byte) (image.Image, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("page: decode bmp: %w", err)
	}
	return img, nil
}

// LoadBMP reads and decodes a BMP file.
func LoadBMP(name string) (image.Image, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return DecodeBMP(data)
}

// Image shows a static image, aligned on the display. It redraws once per second.
type Image struct {
	src image.Image
	h   HorizontalAlignment
	v   VerticalAlignment
}

// NewImage returns a page showing src centered.
func NewImage(src image.Image) *Image {
	return &Image{src: src}
}

// NewAlignedImage returns a page showing src with the given alignment.
func NewAlignedImage(src image.Image, h HorizontalAlignment, v VerticalAlignment) *Image {
	return &Image{src: src, h: h, v: v}
}

func (p *Image) Render(dst draw.Image) error {
	r := align(dst.Bounds(), p.src.Bounds().Size(), p.h, p.v)
	draw.Draw(dst, r, p.src, p.src.Bounds().Min, draw.Src)
	return nil
}

func (p *Image) FramesPerSecond() uint8 {
	return 1
}

// align places a rectangle of size within bounds.
func align(bounds image.Rectangle, size image.Point, h HorizontalAlignment, v VerticalAlignment) image.Rectangle {
	var at image.Point
	switch h {
	case Left:
		at.X = bounds.Min.X
	case Right:
		at.X = bounds.Max.X - size.X
	default:
		at.X = bounds.Min.X + (bounds.Dx()-size.X)/2
	}
	switch v {
	case Top:
		at.Y = bounds.Min.Y
	case Bottom:
		at.Y = bounds.Max.Y - size.Y
	default:
		at.Y = bounds.Min.Y + (bounds.Dy()-size.Y)/2
	}
	return image.Rectangle{Min: at, Max: at.Add(size)}
}
