package draw

import (
	"image"
	"image/color"
	"testing"
)

func lit(img *image.Gray) (n int) {
	for _, v := range img.Pix {
		if v != 0 {
			n++
		}
	}
	return
}

func TestLine(t *testing.T) {
	tests := []struct {
		Name string
		A, B image.Point
		Want int
	}{
		{"point", image.Pt(2, 2), image.Pt(2, 2), 1},
		{"horizontal", image.Pt(0, 1), image.Pt(9, 1), 10},
		{"horizontal reversed", image.Pt(9, 1), image.Pt(0, 1), 10},
		{"vertical", image.Pt(4, 0), image.Pt(4, 7), 8},
		{"diagonal", image.Pt(0, 0), image.Pt(5, 5), 6},
		{"anti-diagonal", image.Pt(0, 5), image.Pt(5, 0), 6},
		{"shallow", image.Pt(0, 0), image.Pt(9, 3), 10},
		{"steep", image.Pt(1, 0), image.Pt(3, 9), 10},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			img := image.NewGray(image.Rect(0, 0, 16, 16))
			Line(img, test.A, test.B, color.White)
			if n := lit(img); n != test.Want {
				it.Errorf("expected %d lit pixels, got %d", test.Want, n)
			}
			if img.GrayAt(test.A.X, test.A.Y).Y == 0 || img.GrayAt(test.B.X, test.B.Y).Y == 0 {
				it.Errorf("expected both end points to be lit")
			}
		})
	}
}

func TestPolyline(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 20))
	Polyline(img, []image.Point{{2, 0}, {0, 0}, {0, 15}, {2, 15}}, color.White)
	// 3 + 16 + 3 with the two shared corners counted once
	if n := lit(img); n != 20 {
		t.Fatalf("expected 20 lit pixels, got %d", n)
	}

	Polyline(img, nil, color.White)
	Polyline(img, []image.Point{{7, 19}}, color.White)
	if img.GrayAt(7, 19).Y == 0 {
		t.Fatal("expected single point to be drawn")
	}
}

func TestRectangle(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	Rectangle(img, image.Rect(2, 3, 12, 8), color.White)
	// 2*10 + 2*5 - 4 corners
	if n := lit(img); n != 26 {
		t.Fatalf("expected 26 lit pixels, got %d", n)
	}
	if img.GrayAt(11, 7).Y == 0 {
		t.Error("expected bottom right corner to be lit")
	}
	if img.GrayAt(12, 8).Y != 0 {
		t.Error("expected max corner to be exclusive")
	}
}

func TestStrokeRectangle(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	StrokeRectangle(img, image.Rect(0, 0, 18, 18), 3, color.White)
	if n := lit(img); n != 18*18-12*12 {
		t.Fatalf("expected %d lit pixels, got %d", 18*18-12*12, n)
	}

	img = image.NewGray(image.Rect(0, 0, 20, 20))
	StrokeRectangle(img, image.Rect(0, 0, 4, 4), 10, color.White)
	if n := lit(img); n != 16 {
		t.Fatalf("expected over-wide stroke to fill the rectangle, got %d lit pixels", n)
	}
}

func TestBox(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	Box(img, image.Rect(5, 5, 15, 10), color.White)
	if n := lit(img); n != 50 {
		t.Fatalf("expected 50 lit pixels, got %d", n)
	}
}

func TestRoundedBox(t *testing.T) {
	var (
		img  = image.NewGray(image.Rect(0, 0, 130, 20))
		rect = image.Rect(5, 5, 125, 15)
	)
	RoundedBox(img, rect, 5, color.White)
	n := lit(img)
	if n == 0 || n >= rect.Dx()*rect.Dy() {
		t.Fatalf("expected rounded box to light less than the full rectangle, got %d", n)
	}
	if img.GrayAt(5, 5).Y != 0 {
		t.Error("expected top left corner to be rounded off")
	}
	if img.GrayAt(65, 10).Y == 0 {
		t.Error("expected center to be filled")
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 130; x++ {
			if img.GrayAt(x, y).Y != 0 && !image.Pt(x, y).In(rect) {
				t.Fatalf("pixel (%d,%d) drawn outside of %s", x, y, rect)
			}
		}
	}
}

func TestRoundedRectangle(t *testing.T) {
	var (
		img  = image.NewGray(image.Rect(0, 0, 40, 40))
		rect = image.Rect(2, 2, 30, 20)
	)
	RoundedRectangle(img, rect, 4, color.White)
	if img.GrayAt(2, 2).Y != 0 {
		t.Error("expected top left corner to be rounded off")
	}
	if img.GrayAt(16, 2).Y == 0 || img.GrayAt(16, 19).Y == 0 {
		t.Error("expected top and bottom edges to be drawn")
	}
	if img.GrayAt(16, 10).Y != 0 {
		t.Error("expected outline only")
	}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if img.GrayAt(x, y).Y != 0 && !image.Pt(x, y).In(rect) {
				t.Fatalf("pixel (%d,%d) drawn outside of %s", x, y, rect)
			}
		}
	}
}
