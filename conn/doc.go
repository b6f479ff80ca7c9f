// Package conn implements the raw buses displays are attached to: I²C through periph.io and SPI
// through the Linux spidev character devices.
package conn
