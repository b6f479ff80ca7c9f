package conn

import (
	"fmt"
	"os"

	"github.com/BeatGlow/pager/internal/ioctl"
)

// SPIMode is the clock polarity and phase of an SPI bus, see <linux/spi/spidev.h>.
type SPIMode uint8

const (
	spiCPHA SPIMode = 0x01
	spiCPOL SPIMode = 0x02
)

// SPI modes.
const (
	SPIMode0 SPIMode = 0
	SPIMode1         = spiCPHA
	SPIMode2         = spiCPOL
	SPIMode3         = spiCPOL | spiCPHA
)

// spidev ioctl numbers, type 'k'.
const (
	spiIOCMode        = 0x6b01
	spiIOCBitsPerWord = 0x6b03
	spiIOCMaxSpeedHz  = 0x6b04
)

// SPISettings are the transfer parameters of a spidev device.
type SPISettings struct {
	Mode        SPIMode
	BitsPerWord uint8
	MaxSpeedHz  uint32
}

// SPI is an open spidev device. Writes are half duplex; the chip select line is driven by the
// kernel unless the caller toggles its own pin.
type SPI struct {
	f        *os.File
	fd       uintptr
	settings SPISettings
}

// SPIDevice is the path of the spidev node for bus and device.
func SPIDevice(bus, device int) string {
	return fmt.Sprintf("/dev/spidev%d.%d", bus, device)
}

// OpenSPI opens the spidev node of bus and device and reads its current settings. The device
// number usually is the chip select line of the bus.
func OpenSPI(bus, device int) (*SPI, error) {
	name := SPIDevice(bus, device)
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("conn: open %s: %w", name, err)
	}

	c := &SPI{f: f, fd: f.Fd()}
	if err = c.load(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("conn: %s: %w", name, err)
	}
	return c, nil
}

func (c *SPI) load() (err error) {
	if err = get(c.fd, spiIOCMode, &c.settings.Mode); err != nil {
		return
	}
	if err = get(c.fd, spiIOCBitsPerWord, &c.settings.BitsPerWord); err != nil {
		return
	}
	return get(c.fd, spiIOCMaxSpeedHz, &c.settings.MaxSpeedHz)
}

func (c *SPI) Close() error {
	return c.f.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s mode=%d bits per word=%d max speed=%dHz", c.f.Name(), c.settings.Mode, c.settings.BitsPerWord, c.settings.MaxSpeedHz)
}

// Settings returns the settings last read from or written to the device.
func (c *SPI) Settings() SPISettings {
	return c.settings
}

func (c *SPI) Mode() SPIMode {
	return c.settings.Mode
}

// SetMode changes the clock mode. Only the CPOL and CPHA bits are kept.
func (c *SPI) SetMode(mode SPIMode) error {
	return set(c.fd, spiIOCMode, &c.settings.Mode, mode&(spiCPOL|spiCPHA))
}

func (c *SPI) BitsPerWord() uint8 {
	return c.settings.BitsPerWord
}

func (c *SPI) SetBitsPerWord(bits uint8) error {
	if bits < 8 || bits > 32 {
		return fmt.Errorf("conn: SPI bits per word need to be 8 or more and 32 or less, got %d", bits)
	}
	return set(c.fd, spiIOCBitsPerWord, &c.settings.BitsPerWord, bits)
}

func (c *SPI) MaxSpeed() int {
	return int(c.settings.MaxSpeedHz)
}

// SetMaxSpeed changes the clock rate; a negative rate keeps the current one.
func (c *SPI) SetMaxSpeed(hz int) error {
	if hz < 0 {
		return nil
	}
	return set(c.fd, spiIOCMaxSpeedHz, &c.settings.MaxSpeedHz, uint32(hz))
}

func (c *SPI) Read(b []byte) (n int, err error) {
	return c.f.Read(b)
}

func (c *SPI) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}

func get[T SPIMode | uint8 | uint32](fd, cmd uintptr, v *T) error {
	return ioctl.Do(fd, ioctl.Pointer(ioctl.Read, v, cmd), v)
}

// set writes want unless cur already holds it, then reads the setting back: spidev silently
// ignores values the controller does not support.
func set[T SPIMode | uint8 | uint32](fd, cmd uintptr, cur *T, want T) error {
	if *cur == want {
		return nil
	}
	if err := ioctl.Do(fd, ioctl.Pointer(ioctl.Write, &want, cmd), &want); err != nil {
		return err
	}
	var got T
	if err := get(fd, cmd, &got); err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("conn: SPI attempted to set %#x, but %#x is in use", want, got)
	}
	*cur = got
	return nil
}
