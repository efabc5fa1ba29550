package scanner

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// checkerboard builds a size×size pattern with block-sized black/white cells,
// distinctive enough for an exact NCC hit.
func checkerboard(size, block int) *image.NRGBA {
	img := imaging.New(size, size, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/block+y/block)%2 == 0 {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func paste(dst *image.NRGBA, src *image.NRGBA, ox, oy int) {
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(ox+x, oy+y, src.At(x, y))
		}
	}
}

func testTemplate(img *image.NRGBA, code string) IconTemplate {
	return IconTemplate{
		Code:   code,
		Image:  img,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}
}

func TestFindMatchesLocatesTemplate(t *testing.T) {
	pattern := checkerboard(16, 4)
	shot := imaging.New(200, 120, color.NRGBA{0, 0, 0, 255})
	paste(shot, pattern, 30, 40)
	paste(shot, pattern, 120, 60)

	matches := FindMatches(shot, testTemplate(pattern, "rifle"), 16, 0.9)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches got %d: %+v", len(matches), matches)
	}
	found := map[[2]int]bool{}
	for _, m := range matches {
		if m.Confidence < 0.9 || m.Confidence > 1 {
			t.Fatalf("confidence out of range: %v", m.Confidence)
		}
		found[[2]int{m.X, m.Y}] = true
	}
	if !found[[2]int{30, 40}] || !found[[2]int{120, 60}] {
		t.Fatalf("matches at wrong positions: %+v", matches)
	}
}

func TestFindMatchesFlatTemplateNoSpuriousHits(t *testing.T) {
	flat := imaging.New(16, 16, color.NRGBA{120, 120, 120, 255})
	shot := imaging.New(100, 100, color.NRGBA{120, 120, 120, 255})
	paste(shot, checkerboard(16, 4), 10, 10)

	if matches := FindMatches(shot, testTemplate(flat, "flat"), 16, 0.8); len(matches) != 0 {
		t.Fatalf("zero-variance template produced matches: %+v", matches)
	}
}

func TestFindMatchesTemplateLargerThanImage(t *testing.T) {
	shot := imaging.New(10, 10, color.NRGBA{0, 0, 0, 255})
	if matches := FindMatches(shot, testTemplate(checkerboard(16, 4), "big"), 16, 0.8); matches != nil {
		t.Fatalf("expected no matches when template exceeds image")
	}
}

func TestSuppressInsertCollapsesOverlaps(t *testing.T) {
	const iconSize = 64
	a := MatchCandidate{Code: "rifle", X: 100, Y: 100, Confidence: 0.85}
	b := MatchCandidate{Code: "rifle", X: 110, Y: 95, Confidence: 0.93}

	accepted := suppressInsert(nil, a, iconSize)
	accepted = suppressInsert(accepted, b, iconSize)
	if len(accepted) != 1 {
		t.Fatalf("overlapping matches should collapse, got %d", len(accepted))
	}
	if accepted[0].Confidence != 0.93 {
		t.Fatalf("collapse must keep the higher confidence, got %v", accepted[0].Confidence)
	}
}

func TestSuppressInsertKeepsDistantMatches(t *testing.T) {
	const iconSize = 64
	a := MatchCandidate{Code: "rifle", X: 100, Y: 100, Confidence: 0.85}
	b := MatchCandidate{Code: "rifle", X: 100, Y: 180, Confidence: 0.9}

	accepted := suppressInsert(suppressInsert(nil, a, iconSize), b, iconSize)
	if len(accepted) != 2 {
		t.Fatalf("distant matches must stay separate, got %d", len(accepted))
	}
}

func TestSuppressInsertLowerConfidenceDiscarded(t *testing.T) {
	const iconSize = 64
	a := MatchCandidate{Code: "rifle", X: 100, Y: 100, Confidence: 0.95}
	b := MatchCandidate{Code: "rifle", X: 105, Y: 102, Confidence: 0.81}

	accepted := suppressInsert(suppressInsert(nil, a, iconSize), b, iconSize)
	if len(accepted) != 1 || accepted[0].Confidence != 0.95 {
		t.Fatalf("expected the original stronger match to survive: %+v", accepted)
	}
}
