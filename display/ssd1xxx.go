package display

// Commands shared by the SSD1305, SSD1306 and SH1106 controllers.
const (
	ssd1xxxSetLowColumn          = 0x00
	ssd1xxxSetHighColumn         = 0x10
	ssd1xxxSetMemoryMode         = 0x20
	ssd1xxxSetColumnAddr         = 0x21
	ssd1xxxSetPageAddr           = 0x22
	ssd1xxxSetStartLine          = 0x40
	ssd1xxxSetContrast           = 0x81
	ssd1xxxSetChargePump         = 0x8D
	ssd1xxxSetSegmentRemap       = 0xA1
	ssd1xxxSetDisplayAllOnResume = 0xA4
	ssd1xxxSetNormalDisplay      = 0xA6
	ssd1xxxSetMultiplexRatio     = 0xA8
	ssd1xxxSetDisplayOff         = 0xAE
	ssd1xxxSetDisplayOn          = 0xAF
	ssd1xxxSetPageStart          = 0xB0
	ssd1xxxSetComScanDec         = 0xC8
	ssd1xxxSetDisplayOffset      = 0xD3
	ssd1xxxSetDisplayClockDiv    = 0xD5
	ssd1xxxSetPrecharge          = 0xD9
	ssd1xxxSetComPins            = 0xDA
	ssd1xxxSetVCOMDeselect       = 0xDB
)

// refreshPaged sends the buffer band by band using page addressing, which every controller in
// the family understands. column is the RAM column of the first visible pixel.
func (d *monoDisplay) refreshPaged(column byte) (err error) {
	bands := (d.height + 7) / 8
	for band := 0; band < bands; band++ {
		if err = d.command(
			ssd1xxxSetPageStart|byte(band&0x7),
			ssd1xxxSetLowColumn|column&0x0f,
			ssd1xxxSetHighColumn|column>>4,
		); err != nil {
			return
		}
		if err = d.data(d.buf.Band(band)...); err != nil {
			return
		}
	}
	return
}
