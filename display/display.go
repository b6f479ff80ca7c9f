// Package display contains drivers for small monochrome OLED displays.
//
// Every driver keeps a frame buffer in memory. Drawing with Set only touches that buffer; Refresh
// sends the whole buffer to the controller over the display's [Conn].
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/pager/pixel"
)

// Errors
var (
	ErrSize   = errors.New("display: unsupported size")
	ErrDriver = errors.New("display: unknown driver")
	ErrClosed = errors.New("display: closed")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Transform maps (x, y) on a display rotated by r to the unrotated width×height frame buffer.
func (r Rotation) Transform(x, y, width, height int) (int, int) {
	switch r % 4 {
	case Rotate90:
		return width - 1 - y, x
	case Rotate180:
		return width - 1 - x, height - 1 - y
	case Rotate270:
		return y, height - 1 - x
	default:
		return x, y
	}
}

// Bounds of a width×height frame buffer as seen through rotation r.
func (r Rotation) Bounds(width, height int) image.Rectangle {
	if r%2 == 1 {
		return image.Rect(0, 0, height, width)
	}
	return image.Rect(0, 0, width, height)
}

// ParseRotation understands the degrees and the aliases accepted on the command line.
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "0":
		return NoRotation, nil
	case "90", "right", "cw":
		return Rotate90, nil
	case "180", "flip":
		return Rotate180, nil
	case "270", "left", "ccw":
		return Rotate270, nil
	default:
		return NoRotation, fmt.Errorf("display: invalid rotation %q", s)
	}
}

// Display is a monochrome OLED display.
type Display interface {
	// Close turns the display off and closes its connection.
	Close() error

	// Clear the display buffer.
	Clear()

	// At returns the color of the pixel at (x, y).
	At(x, y int) color.Color

	// Set the pixel color at (x, y).
	Set(x, y int, c color.Color)

	// Bounds is the display bounding box (dimensions), after rotation.
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error

	// SetRotation adjusts the pixel rotation.
	SetRotation(Rotation) error

	// Refresh sends the display buffer to the hardware.
	Refresh() error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, zero picks the driver default.
	Width int

	// Height of the display in pixels, zero picks the driver default.
	Height int

	// Rotation of the display.
	Rotation Rotation
}

// Driver opens a display on a connection.
type Driver func(Conn, *Config) (Display, error)

var drivers = map[string]Driver{
	"sh1106":  SH1106,
	"ssd1305": SSD1305,
	"ssd1306": SSD1306,
}

// Drivers lists the supported driver names.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open initialises the display controller named driver.
func Open(driver string, conn Conn, config *Config) (Display, error) {
	open, ok := drivers[strings.ToLower(driver)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrDriver, driver)
	}
	if config == nil {
		config = new(Config)
	}
	return open(conn, config)
}

// monoDisplay is the frame buffer and command plumbing shared by the drivers. The buffer is in
// the controllers' native vertical LSB layout; rotation is applied on Set and At.
type monoDisplay struct {
	c        Conn
	buf      *pixel.MonoVerticalLSBImage
	width    int
	height   int
	rotation Rotation
	halted   bool
}

func (d *monoDisplay) init(config *Config) error {
	d.buf = pixel.NewMonoVerticalLSBImage(config.Width, config.Height)
	d.width = config.Width
	d.height = config.Height
	d.rotation = config.Rotation % 4
	return d.reset()
}

// reset pulses the reset line, if the connection has one.
func (d *monoDisplay) reset() (err error) {
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	return
}

func (d *monoDisplay) data(data ...byte) error {
	return d.c.Data(data...)
}

func (d *monoDisplay) command(command byte, data ...byte) error {
	return d.c.Command(command, data...)
}

func (d *monoDisplay) Bounds() image.Rectangle {
	return d.rotation.Bounds(d.width, d.height)
}

func (d *monoDisplay) ColorModel() color.Model {
	return pixel.MonoModel
}

func (d *monoDisplay) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(d.Bounds()) {
		return color.Transparent
	}
	return d.buf.At(d.rotation.Transform(x, y, d.width, d.height))
}

func (d *monoDisplay) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(d.Bounds()) {
		return
	}
	px, py := d.rotation.Transform(x, y, d.width, d.height)
	d.buf.Set(px, py, c)
}

func (d *monoDisplay) Clear() {
	d.buf.Clear()
}

func (d *monoDisplay) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *monoDisplay) Show(show bool) error {
	if show {
		return d.command(ssd1xxxSetDisplayOn)
	}
	return d.command(ssd1xxxSetDisplayOff)
}

func (d *monoDisplay) SetContrast(level uint8) error {
	return d.command(ssd1xxxSetContrast, level)
}

func (d *monoDisplay) SetRotation(rotation Rotation) error {
	d.rotation = rotation % 4
	return nil
}
