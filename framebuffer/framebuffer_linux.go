package framebuffer

import (
	"image"
	"image/color"
	"os"
	"syscall"

	"github.com/BeatGlow/pager/display"
	"github.com/BeatGlow/pager/internal/ioctl"
	"github.com/BeatGlow/pager/pixel"
)

// From <linux/fb.h>
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
	fbioBlank          = 0x4611

	fbBlankUnblank   = 0
	fbBlankPowerdown = 4
)

type frameBuffer struct {
	f          *os.File
	fd         uintptr
	mem        []byte
	buf        *pixel.MonoImage
	info       fixScreenInfo
	screenInfo varScreenInfo
	width      int
	height     int
	rotation   display.Rotation
}

// Open a Linux framebuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string, rotation display.Rotation) (display.Display, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	fb := &frameBuffer{
		f:        f,
		fd:       f.Fd(),
		rotation: rotation % 4,
	}
	if err = ioctl.Do(fb.fd, fbioGetFScreenInfo, &fb.info); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Do(fb.fd, fbioGetVScreenInfo, &fb.screenInfo); err != nil {
		_ = f.Close()
		return nil, err
	}
	switch fb.screenInfo.BitsPerPixel {
	case 1, 8, 16, 24, 32:
	default:
		_ = f.Close()
		return nil, ErrFormat
	}

	if fb.mem, err = syscall.Mmap(int(fb.fd), 0, int(fb.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}

	fb.width = int(fb.screenInfo.Xres)
	fb.height = int(fb.screenInfo.Yres)
	fb.buf = pixel.NewMonoImage(fb.width, fb.height)
	return fb, nil
}

func (fb *frameBuffer) String() string {
	return "fbdev " + fb.f.Name()
}

func (fb *frameBuffer) Bounds() image.Rectangle {
	return fb.rotation.Bounds(fb.width, fb.height)
}

func (fb *frameBuffer) ColorModel() color.Model {
	return pixel.MonoModel
}

func (fb *frameBuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(fb.Bounds()) {
		return color.Transparent
	}
	return fb.buf.At(fb.rotation.Transform(x, y, fb.width, fb.height))
}

func (fb *frameBuffer) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(fb.Bounds()) {
		return
	}
	x, y = fb.rotation.Transform(x, y, fb.width, fb.height)
	fb.buf.Set(x, y, c)
}

func (fb *frameBuffer) Clear() {
	fb.buf.Clear()
}

// Close the framebuffer device
func (fb *frameBuffer) Close() error {
	if err := syscall.Munmap(fb.mem); err != nil {
		return err
	}
	return fb.f.Close()
}

// Show blanks or unblanks the display.
func (fb *frameBuffer) Show(show bool) error {
	level := uintptr(fbBlankPowerdown)
	if show {
		level = fbBlankUnblank
	}
	return ioctl.Call(fb.fd, fbioBlank, level)
}

func (fb *frameBuffer) SetContrast(uint8) error {
	return nil
}

func (fb *frameBuffer) SetRotation(rotation display.Rotation) error {
	fb.rotation = rotation % 4
	return nil
}

// Refresh copies the back buffer to the device memory.
func (fb *frameBuffer) Refresh() error {
	return encode(fb.mem, fb.buf, int(fb.screenInfo.BitsPerPixel), int(fb.info.LineLength))
}

type fixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

type bitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// varScreenInfo contains device independent changeable information about a frame buffer device
// and a specific video mode.
type varScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}
