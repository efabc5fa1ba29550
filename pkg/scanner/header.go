package scanner

import (
	"context"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"quartermaster/pkg/catalog"
)

// stockpileTypes are the container types the header detector can recognize.
var stockpileTypes = map[string]string{
	"seaport":       "SEAPORT",
	"storage depot": "STORAGE_DEPOT",
}

const typeSimilarityFloor = 0.75

// detectHeader OCRs the strip above the inventory grid and tries to pull out
// the stockpile's name and type. Best effort only: any failure returns empty
// values and the scan proceeds without them.
func detectHeader(ctx context.Context, shot *image.NRGBA) (name, typ string) {
	b := shot.Bounds()
	stripH := b.Dy() / 12
	if stripH < 16 {
		return "", ""
	}
	strip := imaging.Crop(shot, image.Rect(0, 0, b.Dx(), stripH))
	strip = Grayscale(strip)
	strip = EnhanceContrast(strip, 1.4)
	strip = Threshold(strip, 140, true)

	text, err := ocrImage(ctx, strip, letterWhitelist, gosseract.PSM_SINGLE_BLOCK)
	if err != nil {
		return "", ""
	}
	return parseHeader(text)
}

// parseHeader splits header text into a stockpile name and type. The type is
// located by sliding a window of words over the text and fuzzy-matching each
// window against the known container types; the remaining words form the
// name.
func parseHeader(text string) (name, typ string) {
	words := strings.Fields(catalog.Normalize(text))
	if len(words) == 0 {
		return "", ""
	}
	bestScore := 0.0
	bestStart, bestEnd := -1, -1
	for key, canonical := range stockpileTypes {
		keyLen := len(strings.Fields(key))
		for i := 0; i+keyLen <= len(words); i++ {
			window := strings.Join(words[i:i+keyLen], " ")
			if s := catalog.Similarity(window, key); s >= typeSimilarityFloor && s > bestScore {
				bestScore = s
				bestStart, bestEnd = i, i+keyLen
				typ = canonical
			}
		}
	}
	if bestStart < 0 {
		return strings.TrimRight(strings.Join(words, " "), " -:"), ""
	}
	rest := append(append([]string{}, words[:bestStart]...), words[bestEnd:]...)
	name = strings.Trim(strings.Join(rest, " "), " -:")
	return name, typ
}
