package display

import (
	"fmt"
)

const (
	ssd1305DefaultWidth    = 128
	ssd1305DefaultHeight   = 32
	ssd1305SetLUT          = 0x91
	ssd1305SetMasterConfig = 0xAD
	ssd1305SetAreaColor    = 0xD8
)

type ssd1305 struct {
	monoDisplay
	column byte
}

// SSD1305 is a driver for the Solomon Systech SSD1305 OLED controller.
func SSD1305(conn Conn, config *Config) (Display, error) {
	d := &ssd1305{
		monoDisplay: monoDisplay{
			c: conn,
		},
	}

	if config.Width == 0 {
		config.Width = ssd1305DefaultWidth
	}
	if config.Height == 0 {
		config.Height = ssd1305DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *ssd1305) String() string {
	return fmt.Sprintf("SSD1305 OLED %dx%d", d.width, d.height)
}

func (d *ssd1305) init(config *Config) (err error) {
	switch {
	case config.Width == 128 && config.Height == 32:
		d.column = 0
	case config.Width == 128 && config.Height == 64:
		d.column = 4
	default:
		return fmt.Errorf("%w: SSD1305 %dx%d", ErrSize, config.Width, config.Height)
	}

	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	if err = d.command(ssd1xxxSetDisplayOff); err != nil {
		return
	}
	for _, command := range [][]byte{
		{ssd1xxxSetStartLine},
		{ssd1xxxSetSegmentRemap},
		{ssd1xxxSetNormalDisplay},
		{ssd1xxxSetMultiplexRatio, byte(config.Height - 1)},
		{ssd1305SetMasterConfig, 0x8E},
		{ssd1xxxSetComScanDec},
		{ssd1xxxSetDisplayOffset, 0x00},
		{ssd1xxxSetDisplayClockDiv, 0xF0},
		{ssd1305SetAreaColor, 0x05},
		{ssd1xxxSetPrecharge, 0xF1},
		{ssd1xxxSetComPins, 0x12},
		{ssd1305SetLUT, 0x3F, 0x3F, 0x3F, 0x3F},
	} {
		if err = d.command(command[0], command[1:]...); err != nil {
			return
		}
	}

	if err = d.SetContrast(0x7F); err != nil {
		return
	}
	if err = d.Refresh(); err != nil {
		return
	}
	return d.Show(true)
}

func (d *ssd1305) Refresh() error {
	return d.refreshPaged(d.column)
}
