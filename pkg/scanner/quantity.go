package scanner

import (
	"context"
	"image"
	"log"
	"regexp"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

var digitRunRE = regexp.MustCompile(`[0-9]+`)

// QuantityROI computes the rectangle below a matched icon where the count
// label is rendered: starting at y+iconH, spanning 2×iconW centered under the
// icon, iconH/2 tall. Returns false when any part of the region falls outside
// the image.
func QuantityROI(imgW, imgH, matchX, matchY, iconW, iconH int) (image.Rectangle, bool) {
	r := image.Rect(
		matchX-iconW/2,
		matchY+iconH,
		matchX-iconW/2+2*iconW,
		matchY+iconH+iconH/2,
	)
	if r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > imgW || r.Max.Y > imgH {
		return image.Rectangle{}, false
	}
	return r, true
}

// parseQuantity maps OCR text to loose and crated counts. Digit runs are
// taken literally: the first run is the loose count, the second (if any) the
// crated count. A thousands-separated label like "1,234" therefore parses as
// loose 1, crated 234 — inherited behavior, kept until the intended semantics
// are confirmed.
func parseQuantity(text string) QuantityReading {
	runs := digitRunRE.FindAllString(text, -1)
	var q QuantityReading
	if len(runs) == 0 {
		return q
	}
	q.Loose, _ = strconv.Atoi(runs[0])
	if len(runs) > 1 {
		q.Crated, _ = strconv.Atoi(runs[1])
	}
	return q
}

// ReadQuantity extracts the count region under a match and resolves it via
// digit-constrained recognition. All failures degrade to {0,0}: an
// unreadable label never aborts the scan.
func ReadQuantity(ctx context.Context, shot *image.NRGBA, matchX, matchY, iconW, iconH int) QuantityReading {
	b := shot.Bounds()
	roi, ok := QuantityROI(b.Dx(), b.Dy(), matchX, matchY, iconW, iconH)
	if !ok {
		return QuantityReading{}
	}
	region := imaging.Crop(shot, roi)

	// canonical pipeline: grayscale -> contrast -> inverted threshold, then
	// upscale so Tesseract sees workable glyph sizes
	region = Grayscale(region)
	region = EnhanceContrast(region, 1.4)
	region = Threshold(region, 140, true)
	region = imaging.Resize(region, region.Bounds().Dx()*3, 0, imaging.Lanczos)

	text, err := ocrImage(ctx, region, digitWhitelist, gosseract.PSM_SINGLE_LINE)
	if err != nil {
		log.Printf("quantity read at (%d,%d): %v", matchX, matchY, err)
		return QuantityReading{}
	}
	return parseQuantity(text)
}
