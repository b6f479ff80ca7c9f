// Package pixel implements the 1-bit color model and packed frame buffers used by small
// monochrome OLED displays.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so anything that draws onto a standard image can draw onto a display buffer.
package pixel
