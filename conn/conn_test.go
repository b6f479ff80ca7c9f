package conn

import (
	"errors"
	"io/fs"
	"testing"
)

func TestSPIMode(t *testing.T) {
	tests := []struct {
		Mode       SPIMode
		CPOL, CPHA bool
	}{
		{SPIMode0, false, false},
		{SPIMode1, false, true},
		{SPIMode2, true, false},
		{SPIMode3, true, true},
	}
	for _, test := range tests {
		if cpol := test.Mode&spiCPOL != 0; cpol != test.CPOL {
			t.Errorf("mode %d: expected CPOL %t", test.Mode, test.CPOL)
		}
		if cpha := test.Mode&spiCPHA != 0; cpha != test.CPHA {
			t.Errorf("mode %d: expected CPHA %t", test.Mode, test.CPHA)
		}
	}
}

func TestSPIDevice(t *testing.T) {
	if name := SPIDevice(1, 2); name != "/dev/spidev1.2" {
		t.Errorf("unexpected device %q", name)
	}
}

func TestOpenSPIMissing(t *testing.T) {
	_, err := OpenSPI(97, 13)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
}
