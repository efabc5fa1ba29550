package scanner

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Character whitelists for the constrained recognition passes.
const (
	digitWhitelist  = "0123456789"
	letterWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:-() "
)

// ocrImage runs one Tesseract recognition over img, constrained to whitelist,
// honoring ctx cancellation and deadline. Tesseract itself cannot be
// interrupted mid-call; on timeout the call is abandoned in its goroutine and
// the context error returned, so a hung recognition never stalls the scan.
func ocrImage(ctx context.Context, img image.Image, whitelist string, psm gosseract.PageSegMode) (string, error) {
	tmp, err := os.CreateTemp("", "qm-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("ocr temp file: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("ocr temp save: %w", err)
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		client := gosseract.NewClient()
		defer client.Close()
		_ = client.SetLanguage("eng")
		_ = client.SetWhitelist(whitelist)
		_ = client.SetPageSegMode(psm)
		_ = client.SetImage(path)
		text, err := client.Text()
		ch <- result{text: text, err: err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("tesseract: %w", r.err)
		}
		return r.text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
