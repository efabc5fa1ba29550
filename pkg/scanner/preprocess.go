package scanner

import (
	"image"
	"math"
)

// Preprocessing transforms for the quantity OCR path. All functions are pure:
// they allocate a new buffer and never touch the caller's pixels.

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Grayscale replaces each pixel with its luminance (0.299R + 0.587G + 0.114B)
// replicated into all color channels. Alpha is preserved.
func Grayscale(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for i := 0; i < len(img.Pix); i += 4 {
		r := float64(img.Pix[i])
		g := float64(img.Pix[i+1])
		bl := float64(img.Pix[i+2])
		lum := uint8(math.Round(0.299*r + 0.587*g + 0.114*bl))
		out.Pix[i] = lum
		out.Pix[i+1] = lum
		out.Pix[i+2] = lum
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

// EnhanceContrast applies the linear transform clamp(factor*(v-128)+128, 0, 255)
// to each color channel. A factor above 1 increases contrast. Alpha is preserved.
func EnhanceContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			out.Pix[i+c] = clamp255(factor*(float64(img.Pix[i+c])-128) + 128)
		}
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

// Threshold binarizes each pixel against value: pixels above value become
// 255, the rest 0. Input is expected to be grayscale; the decision keys on a
// single channel and is replicated into all three. With invert set the outputs are flipped, which turns the
// game's light-text-on-dark quantity labels into the dark-text-on-light form
// Tesseract reads best. Re-thresholding an already binary image with the same
// value and invert=false is a no-op.
func Threshold(img *image.NRGBA, value uint8, invert bool) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for i := 0; i < len(img.Pix); i += 4 {
		var v uint8
		if img.Pix[i] > value {
			v = 255
		}
		if invert {
			v = 255 - v
		}
		out.Pix[i] = v
		out.Pix[i+1] = v
		out.Pix[i+2] = v
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}
