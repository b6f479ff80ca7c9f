package display

import (
	"fmt"
)

const (
	ssd1306DefaultWidth  = 128
	ssd1306DefaultHeight = 64
)

type ssd1306 struct {
	monoDisplay
	colStart byte
}

// SSD1306 is a driver for the Solomon Systech SSD1306 OLED controller.
func SSD1306(conn Conn, config *Config) (Display, error) {
	d := &ssd1306{
		monoDisplay: monoDisplay{
			c: conn,
		},
	}

	if config.Width == 0 {
		config.Width = ssd1306DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1306DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *ssd1306) String() string {
	return fmt.Sprintf("SSD1306 OLED %dx%d", d.width, d.height)
}

func (d *ssd1306) init(config *Config) (err error) {
	var (
		displayClockDiv byte
		comPins         byte
		colStart        byte
	)
	switch {
	case config.Width == 64 && config.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case config.Width == 64 && config.Height == 48:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case config.Width == 96 && config.Height == 16:
		displayClockDiv, comPins, colStart = 0x60, 0x02, 0
	case config.Width == 128 && config.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x02, 0
	case config.Width == 128 && config.Height == 64:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 0
	default:
		return fmt.Errorf("%w: SSD1306 %dx%d", ErrSize, config.Width, config.Height)
	}
	d.colStart = colStart

	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	if err = d.command(ssd1xxxSetDisplayOff); err != nil {
		return
	}
	for _, command := range [][]byte{
		{ssd1xxxSetDisplayClockDiv, displayClockDiv},
		{ssd1xxxSetMultiplexRatio, byte(config.Height - 1)},
		{ssd1xxxSetDisplayOffset, 0x00},
		{ssd1xxxSetStartLine},
		{ssd1xxxSetChargePump, 0x14},
		{ssd1xxxSetMemoryMode, 0x00}, // horizontal addressing
		{ssd1xxxSetSegmentRemap},
		{ssd1xxxSetComScanDec},
		{ssd1xxxSetComPins, comPins},
		{ssd1xxxSetPrecharge, 0xF1},
		{ssd1xxxSetVCOMDeselect, 0x40},
		{ssd1xxxSetDisplayAllOnResume},
		{ssd1xxxSetNormalDisplay},
	} {
		if err = d.command(command[0], command[1:]...); err != nil {
			return
		}
	}

	if err = d.SetContrast(0xCF); err != nil {
		return
	}
	if err = d.Refresh(); err != nil {
		return
	}
	return d.Show(true)
}

// Refresh streams the whole buffer in one transfer using horizontal addressing.
func (d *ssd1306) Refresh() (err error) {
	bands := byte((d.height + 7) / 8)
	if err = d.command(ssd1xxxSetColumnAddr, d.colStart, d.colStart+byte(d.width-1)); err != nil {
		return
	}
	if err = d.command(ssd1xxxSetPageAddr, 0x00, bands-1); err != nil {
		return
	}
	return d.data(d.buf.Pix...)
}
