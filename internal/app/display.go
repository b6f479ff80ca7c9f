package app

import (
	"fmt"
	"log/slog"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/pager/display"
	"github.com/BeatGlow/pager/framebuffer"
	"github.com/BeatGlow/pager/internal/config"
	"github.com/BeatGlow/pager/internal/tui"
)

var hostInit = sync.OnceValue(func() error {
	_, err := host.Init()
	return err
})

// OpenDisplay opens the configured display: a terminal simulator, a framebuffer device or a
// controller on an I²C or SPI bus. Hardware displays get their contrast set.
func OpenDisplay(cfg config.DisplayConfig, logger *slog.Logger) (display.Display, error) {
	rotation, err := display.ParseRotation(cfg.Rotation)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.TerminalDriver:
		return tui.New(cfg.Width, cfg.Height, rotation), nil
	case config.FramebufferDriver:
		return framebuffer.Open(cfg.Device, rotation)
	}

	if err = hostInit(); err != nil {
		return nil, fmt.Errorf("app: host init: %w", err)
	}

	var c display.Conn
	switch cfg.Bus {
	case "i2c":
		c, err = display.OpenI2C(&display.I2CConfig{
			Device: cfg.I2C.Bus,
			Addr:   cfg.I2C.Address,
		})
	case "spi":
		c, err = display.OpenSPI(&display.SPIConfig{
			Bus:       cfg.SPI.Bus,
			Device:    cfg.SPI.Device,
			SpeedHz:   cfg.SPI.Speed,
			BatchSize: display.DefaultSPIConfig.BatchSize,
			Reset:     pin(cfg.SPI.Reset),
			DC:        pin(cfg.SPI.DC),
		})
	default:
		err = fmt.Errorf("app: unsupported bus type %q", cfg.Bus)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("app: using connection", "conn", c.String())

	d, err := display.Open(cfg.Driver, c, &display.Config{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Rotation: rotation,
	})
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = d.SetContrast(cfg.Contrast); err != nil {
		_ = d.Close()
		return nil, err
	}
	logger.Info("app: using display", "driver", cfg.Driver, "size", d.Bounds().Size().String(), "rotation", rotation.String())
	return d, nil
}

// pin looks up a GPIO by name; nil lets the connection pick its default.
func pin(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	if p := gpioreg.ByName(name); p != nil {
		return p
	}
	return nil
}
