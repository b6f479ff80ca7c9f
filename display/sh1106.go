package display

import (
	"fmt"
)

const (
	sh1106DefaultWidth  = 128
	sh1106DefaultHeight = 64

	// The SH1106 has 132 columns of RAM; 128 pixel panels are wired to columns 2–129.
	sh1106ColumnOffset = 2
)

type sh1106 struct {
	monoDisplay
}

// SH1106 is a driver for the Sino Wealth SH1106 OLED controller.
func SH1106(conn Conn, config *Config) (Display, error) {
	d := &sh1106{
		monoDisplay: monoDisplay{
			c: conn,
		},
	}

	if config.Width == 0 {
		config.Width = sh1106DefaultWidth
	}
	if config.Height == 0 {
		config.Height = sh1106DefaultHeight
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *sh1106) String() string {
	return fmt.Sprintf("SH1106 OLED %dx%d", d.width, d.height)
}

func (d *sh1106) init(config *Config) (err error) {
	var (
		multiplexRatio byte
		displayOffset  byte
	)
	switch {
	case config.Width == 128 && config.Height == 32:
		multiplexRatio, displayOffset = 0x1f, 0x0f
	case config.Width == 128 && config.Height == 64:
		multiplexRatio, displayOffset = 0x3f, 0x00
	case config.Width == 128 && config.Height == 128:
		multiplexRatio, displayOffset = 0x7f, 0x02
	default:
		return fmt.Errorf("%w: SH1106 %dx%d", ErrSize, config.Width, config.Height)
	}

	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	if err = d.command(ssd1xxxSetDisplayOff); err != nil {
		return
	}
	for _, command := range [][]byte{
		{ssd1xxxSetDisplayClockDiv, 0x80},
		{ssd1xxxSetMultiplexRatio, multiplexRatio},
		{ssd1xxxSetDisplayOffset, displayOffset},
		{ssd1xxxSetStartLine},
		{ssd1xxxSetChargePump, 0x14},
		{ssd1xxxSetSegmentRemap},
		{ssd1xxxSetComScanDec},
		{ssd1xxxSetComPins, 0x12},
		{ssd1xxxSetPrecharge, 0x22},
		{ssd1xxxSetVCOMDeselect, 0x20},
		{ssd1xxxSetDisplayAllOnResume},
		{ssd1xxxSetNormalDisplay},
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

func (d *sh1106) Refresh() error {
	return d.refreshPaged(sh1106ColumnOffset)
}
