package scanner

import (
	"context"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestQuantityROIPlacement(t *testing.T) {
	roi, ok := QuantityROI(1920, 1080, 500, 300, 64, 64)
	if !ok {
		t.Fatalf("expected in-bounds ROI")
	}
	if roi.Min.X != 468 || roi.Min.Y != 364 {
		t.Fatalf("ROI origin wrong: %v", roi.Min)
	}
	if roi.Dx() != 128 || roi.Dy() != 32 {
		t.Fatalf("ROI size wrong: %dx%d", roi.Dx(), roi.Dy())
	}
}

func TestQuantityROIOutOfBounds(t *testing.T) {
	cases := []struct{ x, y int }{
		{10, 10},     // left edge: x - iconW/2 < 0
		{500, 1050},  // bottom edge: y + iconH + iconH/2 > height
		{1900, 300},  // right edge
		{500, -80},   // above the image
	}
	for _, c := range cases {
		if _, ok := QuantityROI(1920, 1080, c.x, c.y, 64, 64); ok {
			t.Fatalf("expected out-of-bounds for match at (%d,%d)", c.x, c.y)
		}
	}
}

func TestReadQuantityOutOfBoundsReturnsZero(t *testing.T) {
	// ROI would extend past the bottom; must return {0,0} without invoking
	// the recognition engine.
	shot := imaging.New(100, 100, color.NRGBA{0, 0, 0, 255})
	q := ReadQuantity(context.Background(), shot, 50, 80, 64, 64)
	if q.Loose != 0 || q.Crated != 0 {
		t.Fatalf("expected zero reading got %+v", q)
	}
}

func TestParseQuantityDigitRuns(t *testing.T) {
	cases := []struct {
		in     string
		loose  int
		crated int
	}{
		{"", 0, 0},
		{"no digits here", 0, 0},
		{"240", 240, 0},
		{"120 5", 120, 5},
		{"  87\n", 87, 0},
		// thousands separators split into two runs; kept literal
		{"1,234", 1, 234},
		{"40 12 9", 40, 12},
	}
	for _, c := range cases {
		q := parseQuantity(c.in)
		if q.Loose != c.loose || q.Crated != c.crated {
			t.Fatalf("parseQuantity(%q): expected {%d %d} got %+v", c.in, c.loose, c.crated, q)
		}
	}
}
