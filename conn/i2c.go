package conn

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is a device on an I²C bus.
type I2C struct {
	bus  i2c.BusCloser
	conn conn.Conn
	addr uint16
}

// OpenI2C opens the numbered I²C bus, or the first available bus if device is negative, and
// addresses the device at addr. The periph.io host drivers must have been initialised.
func OpenI2C(device int, addr uint8) (*I2C, error) {
	var name string
	if device >= 0 {
		name = strconv.Itoa(device)
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("conn: open I²C bus %q: %w", name, err)
	}

	return &I2C{
		bus:  bus,
		conn: &i2c.Dev{Bus: bus, Addr: uint16(addr)},
		addr: uint16(addr),
	}, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s address %#02x", c.bus, c.addr)
}

func (c *I2C) Close() error {
	return c.bus.Close()
}

func (c *I2C) Read(p []byte) (int, error) {
	if err := c.conn.Tx(nil, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *I2C) Write(p []byte) (int, error) {
	if err := c.conn.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
