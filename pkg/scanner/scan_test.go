package scanner

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"quartermaster/pkg/catalog"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{30, 30, 30, 255}), imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestScanEmptyLibrary(t *testing.T) {
	s := New(NewTemplateLibrary(nil), catalog.Default())
	progress := make(chan Progress, 32)

	report, err := s.Scan(context.Background(), pngBytes(t, 400, 300), Options{Progress: progress})
	if err != nil {
		t.Fatalf("empty library must not fail the scan: %v", err)
	}
	if len(report.Items) != 0 {
		t.Fatalf("expected no items got %d", len(report.Items))
	}
	if len(report.Errors) != 1 || report.Errors[0] != "no templates configured" {
		t.Fatalf("expected the no-templates note, got %v", report.Errors)
	}

	close(progress)
	var last Progress
	for p := range progress {
		last = p
	}
	if last.Stage != "done" || last.Message != "no templates configured" {
		t.Fatalf("expected terminal no-templates progress event, got %+v", last)
	}
}

func TestScanBadImageBytes(t *testing.T) {
	s := New(NewTemplateLibrary(nil), catalog.Default())
	_, err := s.Scan(context.Background(), []byte("not an image"), Options{})
	if !errors.Is(err, ErrImageLoad) {
		t.Fatalf("expected ErrImageLoad got %v", err)
	}
}

func TestScanNilProgressChannel(t *testing.T) {
	s := New(NewTemplateLibrary(nil), catalog.Default())
	if _, err := s.Scan(context.Background(), pngBytes(t, 100, 100), Options{}); err != nil {
		t.Fatalf("scan without progress channel failed: %v", err)
	}
}

func TestMatchableTemplatesFactionFilter(t *testing.T) {
	pattern := checkerboard(16, 4)
	lib := NewTemplateLibrary([]IconTemplate{
		testTemplate(pattern, "argenti"),     // colonial
		testTemplate(pattern, "loughcaster"), // warden
		testTemplate(pattern, "bmats"),       // shared
		testTemplate(pattern, "custom_icon"), // unknown to the catalog
	})
	s := New(lib, catalog.Default())

	codes := map[string]bool{}
	for _, tmpl := range s.matchableTemplates(catalog.FactionWardens) {
		codes[tmpl.Code] = true
	}
	if codes["argenti"] {
		t.Fatalf("colonial template must be filtered for wardens")
	}
	if !codes["loughcaster"] || !codes["bmats"] {
		t.Fatalf("warden and shared templates missing: %v", codes)
	}
	if !codes["custom_icon"] {
		t.Fatalf("templates unknown to the catalog stay matchable")
	}
}

func TestClusterMatchesAmbiguity(t *testing.T) {
	matches := []MatchCandidate{
		{Code: "rifle", X: 100, Y: 100, Confidence: 0.84},
		{Code: "blakerow", X: 104, Y: 98, Confidence: 0.91},
		{Code: "bmats", X: 400, Y: 100, Confidence: 0.88},
	}
	clusters := clusterMatches(matches, 64)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters got %d", len(clusters))
	}
	if clusters[0].winner.Code != "blakerow" {
		t.Fatalf("cluster winner should be the higher confidence: %+v", clusters[0].winner)
	}
	if len(clusters[0].alternates) != 1 || clusters[0].alternates[0].Code != "rifle" {
		t.Fatalf("losing match should survive as alternate: %+v", clusters[0].alternates)
	}
}

func TestParseHeader(t *testing.T) {
	name, typ := parseHeader("Westgate Keep - Storage Depot")
	if typ != "STORAGE_DEPOT" {
		t.Fatalf("expected STORAGE_DEPOT got %q", typ)
	}
	if name != "westgate keep" {
		t.Fatalf("expected name 'westgate keep' got %q", name)
	}

	// OCR noise within the similarity floor still resolves the type
	_, typ = parseHeader("Blemish Seaporl")
	if typ != "SEAPORT" {
		t.Fatalf("expected SEAPORT for noisy text got %q", typ)
	}

	if _, typ = parseHeader("just a plain label"); typ != "" {
		t.Fatalf("unrelated text must not resolve a type, got %q", typ)
	}
}
