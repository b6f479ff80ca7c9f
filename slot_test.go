package pager

import (
	"errors"
	"testing"
	"time"

	"github.com/BeatGlow/pager/draw"
)

func TestNavigate(t *testing.T) {
	tests := []struct {
		Name      string
		Next, N   int
		Command   Command
		Selected  int
		Following int
	}{
		{"first turn", 0, 3, None, 0, 1},
		{"advance", 1, 3, Advance, 1, 2},
		{"wrap forward", 2, 3, None, 2, 0},
		{"retreat from second", 2, 3, Retreat, 0, 1},
		{"retreat from first", 1, 3, Retreat, 2, 0},
		{"retreat before any turn", 0, 3, Retreat, 1, 2},
		{"single page", 0, 1, Retreat, 0, 0},
		{"two pages retreat", 0, 2, Retreat, 0, 1},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			selected, following := navigate(test.Next, test.N, test.Command)
			if selected != test.Selected || following != test.Following {
				it.Errorf("expected (%d, %d), got (%d, %d)", test.Selected, test.Following, selected, following)
			}
		})
	}
}

func TestNavigateStaysInRange(t *testing.T) {
	for n := 1; n <= 8; n++ {
		next := 0
		for i := 0; i < 4*n; i++ {
			command := Command(i % 3)
			selected, following := navigate(next, n, command)
			if selected < 0 || selected >= n || following < 0 || following >= n {
				t.Fatalf("n=%d: index out of range: (%d, %d)", n, selected, following)
			}
			next = following
		}

		next = 0
		for i := 0; i < n; i++ {
			_, next = navigate(next, n, None)
		}
		if next != 0 {
			t.Errorf("n=%d: expected %d advances to return to 0, got %d", n, n, next)
		}
	}
}

func TestWrap(t *testing.T) {
	for _, test := range []struct{ I, N, Want int }{
		{0, 3, 0},
		{3, 3, 0},
		{-1, 3, 2},
		{-2, 3, 1},
		{-4, 3, 2},
		{7, 5, 2},
	} {
		if v := wrap(test.I, test.N); v != test.Want {
			t.Errorf("wrap(%d, %d): expected %d, got %d", test.I, test.N, test.Want, v)
		}
	}
}

func TestRegistryCapacity(t *testing.T) {
	r := New(newTestSurface(8, 8), 2)
	page := PageFunc(func(draw.Image) error { return nil })

	if err := r.AddPage(page); err != nil {
		t.Fatal(err)
	}
	if err := r.AddPageWithDuration(page, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := r.AddPage(page); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected %v, got %v", ErrCapacity, err)
	}
	if n := r.Len(); n != 2 {
		t.Fatalf("expected 2 pages, got %d", n)
	}
	if err := r.AddPage(nil); !errors.Is(err, ErrNilPage) {
		t.Fatalf("expected %v, got %v", ErrNilPage, err)
	}
}

func TestSlotDuration(t *testing.T) {
	if d := (Slot{}).duration(DefaultDuration); d != DefaultDuration {
		t.Errorf("expected default %s, got %s", DefaultDuration, d)
	}
	if d := (Slot{Duration: time.Second}).duration(DefaultDuration); d != time.Second {
		t.Errorf("expected custom %s, got %s", time.Second, d)
	}
}
