package display

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/BeatGlow/pager/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("display: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("display: data/command (DC) GPIO pin is invalid")
)

// Default GPIO pins of the common Raspberry Pi OLED hats.
const (
	DefaultResetPin = "GPIO25"
	DefaultDCPin    = "GPIO24"
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level. Connections without a reset pin ignore it.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C bus number, use -1 to use the first available bus.
	Device int

	// Addr is the I²C address.
	Addr uint8

	// Reset pin, optional.
	Reset gpio.PinOut
}

// DefaultI2CConfig is used when OpenI2C gets no configuration.
var DefaultI2CConfig = I2CConfig{
	Device: -1,
	Addr:   0x3c,
}

type i2cConn struct {
	*conn.I2C
	reset gpio.PinOut
}

// OpenI2C opens a display connection on an I²C bus. The SSD1xxx controllers prefix every
// transfer with a control byte: 0x00 for commands and 0x40 for display data.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	if config.Addr == 0 {
		config.Addr = DefaultI2CConfig.Addr
	}

	c, err := conn.OpenI2C(config.Device, config.Addr)
	if err != nil {
		return nil, err
	}

	return &i2cConn{
		I2C:   c,
		reset: config.Reset,
	}, nil
}

func (c *i2cConn) Command(cmnd byte, args ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{0x00, cmnd}, args...))
	return
}

func (c *i2cConn) Data(data ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{0x40}, data...))
	return
}

func (c *i2cConn) Reset(level gpio.Level) error {
	if c.reset == nil || c.reset == gpio.INVALID {
		return nil
	}
	return c.reset.Out(level)
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	Mode      conn.SPIMode
	SpeedHz   uint32
	DataLow   bool
	BatchSize uint

	// Reset and DC pins are looked up by their default names when nil.
	Reset gpio.PinOut
	DC    gpio.PinOut

	// CE is an optional chip enable pin driven by software.
	CE gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	SpeedHz:   8_000_000,
	BatchSize: 4096,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	32_000_000,
}

type spiConn struct {
	bus       *conn.SPI
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	cs        gpio.PinOut
	dataLow   bool
	batchSize int
}

// OpenSPI opens a display connection on a 4-wire SPI bus. The GPIO pins are resolved through
// periph.io, so the host drivers must have been initialised.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.Reset == nil {
		config.Reset = gpioreg.ByName(DefaultResetPin)
	}
	if config.DC == nil {
		config.DC = gpioreg.ByName(DefaultDCPin)
	}
	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}
	if !slices.Contains(ValidSPISpeeds, config.SpeedHz) {
		return nil, fmt.Errorf("display: invalid SPI speed %dHz", config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}
	if err = c.SetMode(config.Mode); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &spiConn{
		bus:       c,
		batchSize: int(config.BatchSize),
		dataLow:   config.DataLow,
		reset:     config.Reset,
		dc:        config.DC,
		cs:        config.CE,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	// Controllers expecting arguments in command mode take them with DC still low.
	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if err = c.writeChunked(append([]byte{cmnd}, data...)); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) > c.batchSize {
		slog.Debug("display: chunked SPI write", "bytes", len(data), "chunks", (len(data)+c.batchSize-1)/c.batchSize)
	}
	for chunk := range slices.Chunk(data, c.batchSize) {
		if _, err = c.bus.Write(chunk); err != nil {
			return
		}
	}
	return
}
