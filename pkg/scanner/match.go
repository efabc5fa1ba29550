package scanner

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Template matching by normalized cross-correlation. The screenshot is
// reduced once to a grayscale plane with summed-area tables so every window's
// mean and variance cost O(1); the per-window dot product against the
// template remains O(n) over template pixels.

const varianceEps = 1e-9

type grayPlane struct {
	pix        []float64
	integral   []float64
	integralSq []float64
	w, h       int
}

func newGrayPlane(img *image.NRGBA) *grayPlane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := &grayPlane{
		pix:        make([]float64, w*h),
		integral:   make([]float64, w*h),
		integralSq: make([]float64, w*h),
		w:          w,
		h:          h,
	}
	for y := 0; y < h; y++ {
		var rowSum, rowSumSq float64
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			g := 0.299*float64(row[i]) + 0.587*float64(row[i+1]) + 0.114*float64(row[i+2])
			off := y*w + x
			p.pix[off] = g
			rowSum += g
			rowSumSq += g * g
			if y == 0 {
				p.integral[off] = rowSum
				p.integralSq[off] = rowSumSq
			} else {
				p.integral[off] = p.integral[(y-1)*w+x] + rowSum
				p.integralSq[off] = p.integralSq[(y-1)*w+x] + rowSumSq
			}
		}
	}
	return p
}

// windowSums returns the sum and squared sum over the w×h window whose top
// left corner is (x, y).
func (p *grayPlane) windowSums(x, y, w, h int) (sum, sumSq float64) {
	x1, y1 := x+w-1, y+h-1
	at := func(t []float64, x, y int) float64 {
		if x < 0 || y < 0 {
			return 0
		}
		return t[y*p.w+x]
	}
	sum = at(p.integral, x1, y1) - at(p.integral, x-1, y1) -
		at(p.integral, x1, y-1) + at(p.integral, x-1, y-1)
	sumSq = at(p.integralSq, x1, y1) - at(p.integralSq, x-1, y1) -
		at(p.integralSq, x1, y-1) + at(p.integralSq, x-1, y-1)
	return sum, sumSq
}

// grayTemplate holds a resized template's grayscale pixels and moments.
type grayTemplate struct {
	pix      []float64
	w, h     int
	mean     float64
	stdDev   float64
	flatness bool
}

func newGrayTemplate(tmpl IconTemplate, iconSize int) grayTemplate {
	img := tmpl.Image
	// resize to the calibrated icon size, preserving aspect
	if tmpl.Width != iconSize {
		img = imaging.Resize(img, iconSize, 0, imaging.Lanczos)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	g := grayTemplate{pix: make([]float64, w*h), w: w, h: h}
	var sum, sumSq float64
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			v := 0.299*float64(row[i]) + 0.587*float64(row[i+1]) + 0.114*float64(row[i+2])
			g.pix[y*w+x] = v
			sum += v
			sumSq += v * v
		}
	}
	n := float64(w * h)
	g.mean = sum / n
	variance := (sumSq - sum*sum/n) / n
	if variance <= varianceEps {
		// flat-color template: NCC is undefined, never report matches
		g.flatness = true
		return g
	}
	g.stdDev = math.Sqrt(variance)
	return g
}

// FindMatches locates occurrences of tmpl within shot. The template is
// resized to iconSize, both images are reduced to grayscale, and every
// position scoring at least threshold survives greedy non-max suppression
// with a minimum distance of iconSize per axis.
func FindMatches(shot *image.NRGBA, tmpl IconTemplate, iconSize int, threshold float64) []MatchCandidate {
	return findMatchesOnPlane(newGrayPlane(shot), tmpl, iconSize, threshold)
}

// findMatchesOnPlane is the plane-reusing form: one scan builds the plane
// once and matches every template against it.
func findMatchesOnPlane(plane *grayPlane, tmpl IconTemplate, iconSize int, threshold float64) []MatchCandidate {
	gt := newGrayTemplate(tmpl, iconSize)
	if gt.flatness || gt.w > plane.w || gt.h > plane.h {
		return nil
	}
	n := float64(gt.w * gt.h)
	var accepted []MatchCandidate
	for y := 0; y+gt.h <= plane.h; y++ {
		for x := 0; x+gt.w <= plane.w; x++ {
			sumF, sumSqF := plane.windowSums(x, y, gt.w, gt.h)
			meanF := sumF / n
			varF := (sumSqF - sumF*sumF/n) / n
			if varF <= varianceEps {
				continue
			}
			var dot float64
			for ty := 0; ty < gt.h; ty++ {
				prow := plane.pix[(y+ty)*plane.w+x:]
				trow := gt.pix[ty*gt.w:]
				for tx := 0; tx < gt.w; tx++ {
					dot += prow[tx] * trow[tx]
				}
			}
			score := (dot - n*meanF*gt.mean) / (n * math.Sqrt(varF) * gt.stdDev)
			if score > 1 {
				// float error can push a perfect correlation past 1
				score = 1
			}
			if score >= threshold {
				accepted = suppressInsert(accepted, MatchCandidate{
					Code:       tmpl.Code,
					X:          x,
					Y:          y,
					Confidence: score,
				}, iconSize)
			}
		}
	}
	return accepted
}

// suppressInsert merges cand into the accepted set. When the nearest accepted
// candidate lies within minDist on both axes the two collapse, keeping the
// higher confidence; otherwise cand is accepted as a new match.
func suppressInsert(accepted []MatchCandidate, cand MatchCandidate, minDist int) []MatchCandidate {
	nearest := -1
	nearestDist := math.MaxFloat64
	for i := range accepted {
		dx := abs(accepted[i].X - cand.X)
		dy := abs(accepted[i].Y - cand.Y)
		if dx < minDist && dy < minDist {
			if d := float64(dx*dx + dy*dy); d < nearestDist {
				nearest, nearestDist = i, d
			}
		}
	}
	if nearest < 0 {
		return append(accepted, cand)
	}
	if cand.Confidence > accepted[nearest].Confidence {
		accepted[nearest] = cand
	}
	return accepted
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
