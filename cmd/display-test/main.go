// Command display-test draws a moving test pattern on a monochrome display.
//
// Usage:
//
//	display-test [flags] <i2c|spi> <driver>
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/pager/display"
	"github.com/BeatGlow/pager/draw"
	"github.com/BeatGlow/pager/pixel"
)

func main() {
	widthFlag := flag.Int("width", 0, "Display width")
	heightFlag := flag.Int("height", 0, "Display height")
	i2cDeviceFlag := flag.Int("i2c-dev", display.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(display.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	resetPinFlag := flag.String("reset", display.DefaultResetPin, "Reset GPIO pin")
	dcPinFlag := flag.String("dc", display.DefaultDCPin, "Data/Command GPIO pin (DC)")
	cePinFlag := flag.String("ce", "", "Chip enable GPIO pin (default: hardware chip select)")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	contrastFlag := flag.Uint("contrast", 0x7f, "Contrast level")
	frameFlag := flag.Duration("frame", 50*time.Millisecond, "Frame interval")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bus> <driver>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Drivers: %s\n", strings.Join(display.Drivers(), ", "))
		os.Exit(1)
	}

	rotation, err := display.ParseRotation(*rotateFlag)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using rotation: %s\n", rotation)

	if _, err = host.Init(); err != nil {
		fatal(err)
	}

	var c display.Conn
	switch busType := flag.Arg(0); busType {
	case "i2c":
		c, err = display.OpenI2C(&display.I2CConfig{
			Device: *i2cDeviceFlag,
			Addr:   uint8(*i2cAddrFlag),
		})
	case "spi":
		config := &display.SPIConfig{
			Bus:     *spiBusFlag,
			Device:  *spiDeviceFlag,
			Reset:   gpioreg.ByName(*resetPinFlag),
			DC:      gpioreg.ByName(*dcPinFlag),
			SpeedHz: display.DefaultSPIConfig.SpeedHz,
		}
		if *cePinFlag != "" {
			config.CE = gpioreg.ByName(*cePinFlag)
		}
		c, err = display.OpenSPI(config)
	default:
		err = fmt.Errorf("unsupported bus type %q", busType)
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", c)

	output, err := display.Open(flag.Arg(1), c, &display.Config{
		Width:    *widthFlag,
		Height:   *heightFlag,
		Rotation: rotation,
	})
	if err != nil {
		_ = c.Close()
		fatal(err)
	}
	defer func() { _ = output.Close() }()

	if err = output.SetContrast(uint8(*contrastFlag)); err != nil {
		fatal(err)
	}
	if err = output.Show(true); err != nil {
		fatal(err)
	}

	r := output.Bounds()
	fmt.Printf("using driver: %s at %s\n", flag.Arg(1), r.Size())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(*frameFlag)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for offset := 0; ; offset++ {
		pattern(output, offset)
		if err = output.Refresh(); err != nil {
			fatal(err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pattern draws a box around the edge, diagonal stripes moving with offset and a rounded bar on top.
func pattern(dst display.Display, offset int) {
	r := dst.Bounds()
	dst.Clear()
	draw.Rectangle(dst, r, pixel.On)
	for y := r.Min.Y + 1; y < r.Max.Y-1; y++ {
		for x := r.Min.X + 1; x < r.Max.X-1; x++ {
			if (x+y+offset)%4 == 0 {
				dst.Set(x, y, pixel.On)
			}
		}
	}

	bar := image.Rect(5, 5, r.Dx()-5, 15)
	if bar.Dx() > 10 {
		draw.RoundedBox(dst, bar, 5, pixel.On)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
