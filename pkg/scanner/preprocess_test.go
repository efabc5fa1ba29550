package scanner

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestGrayscaleLuminance(t *testing.T) {
	cases := []struct {
		in   color.NRGBA
		want uint8
	}{
		{color.NRGBA{255, 0, 0, 255}, 76},   // 0.299*255
		{color.NRGBA{0, 255, 0, 255}, 150},  // 0.587*255
		{color.NRGBA{0, 0, 255, 255}, 29},   // 0.114*255
		{color.NRGBA{255, 255, 255, 200}, 255},
	}
	for _, c := range cases {
		out := Grayscale(solid(2, 2, c.in))
		if out.Pix[0] != c.want || out.Pix[1] != c.want || out.Pix[2] != c.want {
			t.Fatalf("grayscale of %v: expected %d got %d/%d/%d", c.in, c.want, out.Pix[0], out.Pix[1], out.Pix[2])
		}
		if out.Pix[3] != c.in.A {
			t.Fatalf("alpha not preserved: expected %d got %d", c.in.A, out.Pix[3])
		}
	}
}

func TestGrayscaleDoesNotMutateInput(t *testing.T) {
	in := solid(2, 2, color.NRGBA{200, 10, 30, 255})
	Grayscale(in)
	if in.Pix[0] != 200 || in.Pix[1] != 10 {
		t.Fatalf("input image was mutated")
	}
}

func TestEnhanceContrast(t *testing.T) {
	out := EnhanceContrast(solid(1, 1, color.NRGBA{200, 100, 128, 255}), 2)
	if out.Pix[0] != 255 { // 2*(200-128)+128 = 272 clamped
		t.Fatalf("expected clamp to 255 got %d", out.Pix[0])
	}
	if out.Pix[1] != 72 { // 2*(100-128)+128
		t.Fatalf("expected 72 got %d", out.Pix[1])
	}
	if out.Pix[2] != 128 {
		t.Fatalf("midpoint should be fixed, got %d", out.Pix[2])
	}
}

func TestThresholdIdempotent(t *testing.T) {
	// gradient image so both sides of the threshold are exercised
	in := imaging.New(16, 1, color.NRGBA{0, 0, 0, 255})
	for x := 0; x < 16; x++ {
		v := uint8(x * 16)
		in.Set(x, 0, color.NRGBA{v, v, v, 255})
	}
	once := Threshold(in, 128, false)
	twice := Threshold(once, 128, false)
	if !bytes.Equal(once.Pix, twice.Pix) {
		t.Fatalf("re-thresholding a binary image changed pixels")
	}
}

func TestThresholdInvert(t *testing.T) {
	out := Threshold(solid(1, 1, color.NRGBA{200, 200, 200, 255}), 128, true)
	if out.Pix[0] != 0 {
		t.Fatalf("bright pixel with invert expected 0 got %d", out.Pix[0])
	}
	out = Threshold(solid(1, 1, color.NRGBA{10, 10, 10, 255}), 128, true)
	if out.Pix[0] != 255 {
		t.Fatalf("dark pixel with invert expected 255 got %d", out.Pix[0])
	}
}
