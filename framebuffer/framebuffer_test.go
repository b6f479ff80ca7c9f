package framebuffer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/BeatGlow/pager/pixel"
)

func TestEncode(t *testing.T) {
	src := pixel.NewMonoImage(10, 2)
	src.Set(0, 0, pixel.On)
	src.Set(9, 0, pixel.On)
	src.Set(1, 1, pixel.On)

	tests := []struct {
		Name   string
		BPP    int
		Stride int
		Fill   byte
		Want   []byte
	}{
		{"1bpp", 1, 4, 0x00, []byte{
			0x80, 0x40, 0, 0,
			0x40, 0x00, 0, 0,
		}},
		{"16bpp", 16, 20, 0xaa, append(append(append(
			[]byte{0xff, 0xff}, make([]byte, 16)...), 0xff, 0xff),
			append([]byte{0, 0, 0xff, 0xff}, make([]byte, 16)...)...)},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			dst := bytes.Repeat([]byte{test.Fill}, len(test.Want))
			if err := encode(dst, src, test.BPP, test.Stride); err != nil {
				it.Fatal(err)
			}
			if !bytes.Equal(dst, test.Want) {
				it.Errorf("expected\n% x\ngot\n% x", test.Want, dst)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	src := pixel.NewMonoImage(8, 8)
	if err := encode(make([]byte, 64), src, 4, 4); !errors.Is(err, ErrFormat) {
		t.Errorf("expected %v, got %v", ErrFormat, err)
	}
	if err := encode(make([]byte, 7), src, 1, 1); err == nil {
		t.Error("expected error for short buffer")
	}
}
