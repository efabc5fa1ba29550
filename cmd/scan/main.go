package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quartermaster/pkg/catalog"
	"quartermaster/pkg/scanner"
)

func main() {
	templateDir := flag.String("templates", "templates/icons", "directory of icon template PNGs")
	faction := flag.String("faction", "all", "faction filter: all, colonials or wardens")
	threshold := flag.Float64("threshold", 0.8, "template match acceptance threshold")
	workers := flag.Int("workers", 4, "concurrent matching and OCR workers")
	timeout := flag.Duration("ocr-timeout", 15*time.Second, "per-read OCR deadline")
	textFallback := flag.Bool("text-fallback", false, "also run full-image text recognition")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: scan [flags] <screenshot.png>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read screenshot: %v", err)
	}

	cat := catalog.Default()
	lib, err := scanner.LoadTemplateLibrary(*templateDir, cat)
	if err != nil {
		log.Fatalf("load templates: %v", err)
	}
	scn := scanner.New(lib, cat)

	progress := make(chan scanner.Progress, 16)
	go func() {
		for p := range progress {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s %s\n", p.Percent, p.Stage, p.Message)
		}
	}()

	report, err := scn.Scan(context.Background(), data, scanner.Options{
		Faction:      catalog.ParseFaction(*faction),
		Threshold:    *threshold,
		Workers:      *workers,
		OCRTimeout:   *timeout,
		TextFallback: *textFallback,
		Progress:     progress,
	})
	close(progress)
	if err != nil {
		log.Fatalf("scan: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Println(string(out))
}
