package scanner

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/sync/errgroup"

	"quartermaster/pkg/catalog"
)

// Options tune a single scan invocation. Zero values fall back to defaults.
type Options struct {
	// Faction restricts matching to one faction's catalog subset.
	Faction catalog.Faction
	// Threshold is the NCC acceptance score for icon matches.
	Threshold float64
	// MinConfidence is the similarity floor for fuzzy text resolution.
	MinConfidence float64
	// Workers caps concurrent matching and recognition work.
	Workers int
	// OCRTimeout bounds each recognition call so a hung Tesseract invocation
	// cannot stall the scan.
	OCRTimeout time.Duration
	// TextFallback additionally OCRs the screenshot for item name text and
	// resolves it through the catalog's fuzzy lookup.
	TextFallback bool
	// Progress receives ordered stage events when non-nil.
	Progress chan<- Progress
}

const (
	defaultThreshold     = 0.8
	defaultMinConfidence = 0.6
	defaultWorkers       = 4
	defaultOCRTimeout    = 15 * time.Second
)

func (o *Options) applyDefaults() {
	if o.Threshold <= 0 {
		o.Threshold = defaultThreshold
	}
	if o.MinConfidence <= 0 {
		o.MinConfidence = defaultMinConfidence
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.OCRTimeout <= 0 {
		o.OCRTimeout = defaultOCRTimeout
	}
	if o.Faction == "" {
		o.Faction = catalog.FactionAll
	}
}

// Scanner converts stockpile screenshots into structured inventory records.
// It only reads its template library and catalog, so one Scanner serves
// concurrent scans without coordination.
type Scanner struct {
	library *TemplateLibrary
	catalog *catalog.Catalog
}

func New(library *TemplateLibrary, cat *catalog.Catalog) *Scanner {
	return &Scanner{library: library, catalog: cat}
}

// Scan runs the full pipeline: load -> calibrate -> match -> read quantities
// -> header detection -> optional fuzzy text resolution. Only image decode
// failure is returned as an error; everything else degrades into the report's
// Errors list. Result order follows catalog position, not template
// registration order.
func (s *Scanner) Scan(ctx context.Context, data []byte, opts Options) (*Report, error) {
	opts.applyDefaults()
	report := &Report{Items: []ScanResult{}, Errors: []string{}}

	emit(opts.Progress, "load", 0, "decoding image")
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	shot := imaging.Clone(img)

	templates := s.matchableTemplates(opts.Faction)
	if len(templates) == 0 {
		emit(opts.Progress, "done", 100, noTemplatesNote)
		report.Errors = append(report.Errors, noTemplatesNote)
		return report, nil
	}

	emit(opts.Progress, "calibrate", 5, "")
	iconSize := CalibrateIconSize(shot.Bounds().Dx())

	matches, matchErrs := s.matchTemplates(ctx, shot, templates, iconSize, opts)
	report.Errors = append(report.Errors, matchErrs...)

	clusters := clusterMatches(matches, iconSize)
	emit(opts.Progress, "quantities", 60, fmt.Sprintf("%d matches", len(clusters)))

	items, readErrs := s.readQuantities(ctx, shot, clusters, iconSize, opts)
	report.Items = append(report.Items, items...)
	report.Errors = append(report.Errors, readErrs...)

	emit(opts.Progress, "header", 90, "")
	hctx, cancel := context.WithTimeout(ctx, opts.OCRTimeout)
	report.Name, report.Type = detectHeader(hctx, shot)
	cancel()

	if opts.TextFallback {
		emit(opts.Progress, "resolve", 95, "")
		s.resolveText(ctx, shot, opts, report)
	}

	sort.SliceStable(report.Items, func(i, j int) bool {
		pi, pj := s.catalog.Position(report.Items[i].Code), s.catalog.Position(report.Items[j].Code)
		if pi != pj {
			return pi < pj
		}
		return report.Items[i].Code < report.Items[j].Code
	})
	emit(opts.Progress, "done", 100, fmt.Sprintf("%d items", len(report.Items)))
	return report, nil
}

// matchableTemplates filters the library snapshot down to the faction subset.
// Templates whose code is not in the catalog at all stay matchable; their
// results carry the raw code.
func (s *Scanner) matchableTemplates(f catalog.Faction) []IconTemplate {
	all := s.library.Templates()
	filtered := s.catalog.Filter(f)
	var out []IconTemplate
	for _, t := range all {
		if _, known := s.catalog.ByCode(t.Code); known {
			if _, ok := filtered.ByCode(t.Code); !ok {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// matchTemplates scans each template against the shared grayscale plane on a
// bounded worker group. A failure on one template is logged and reported but
// never aborts the others.
func (s *Scanner) matchTemplates(ctx context.Context, shot *image.NRGBA, templates []IconTemplate, iconSize int, opts Options) ([]MatchCandidate, []string) {
	plane := newGrayPlane(shot)

	var (
		mu      sync.Mutex
		matches []MatchCandidate
		errs    []string
		done    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, tmpl := range templates {
		tmpl := tmpl
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			defer func() {
				if r := recover(); r != nil {
					log.Printf("matching %s: %v", tmpl.Code, r)
					mu.Lock()
					errs = append(errs, fmt.Sprintf("matching %s failed: %v", tmpl.Code, r))
					mu.Unlock()
				}
			}()
			found := findMatchesOnPlane(plane, tmpl, iconSize, opts.Threshold)
			mu.Lock()
			matches = append(matches, found...)
			done++
			pct := 10 + 50*done/len(templates)
			mu.Unlock()
			emit(opts.Progress, "match", pct, tmpl.Code)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		mu.Lock()
		errs = append(errs, fmt.Sprintf("matching interrupted: %v", err))
		mu.Unlock()
	}
	return matches, errs
}

// cluster groups matches that landed on the same grid cell; the strongest
// claims the cell and the rest become review candidates.
type cluster struct {
	winner     MatchCandidate
	alternates []MatchCandidate
}

func clusterMatches(matches []MatchCandidate, iconSize int) []cluster {
	var clusters []cluster
next:
	for _, m := range matches {
		for i := range clusters {
			c := &clusters[i]
			if abs(c.winner.X-m.X) < iconSize && abs(c.winner.Y-m.Y) < iconSize {
				if m.Confidence > c.winner.Confidence {
					c.alternates = append(c.alternates, c.winner)
					c.winner = m
				} else {
					c.alternates = append(c.alternates, m)
				}
				continue next
			}
		}
		clusters = append(clusters, cluster{winner: m})
	}
	return clusters
}

// readQuantities resolves the count label under each cluster winner. The
// recognition engine is the slow stage, so reads run concurrently up to the
// worker cap with a per-call deadline.
func (s *Scanner) readQuantities(ctx context.Context, shot *image.NRGBA, clusters []cluster, iconSize int, opts Options) ([]ScanResult, []string) {
	var (
		mu    sync.Mutex
		items []ScanResult
		errs  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, c := range clusters {
		c := c
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			rctx, cancel := context.WithTimeout(gctx, opts.OCRTimeout)
			q := ReadQuantity(rctx, shot, c.winner.X, c.winner.Y, iconSize, iconSize)
			cancel()
			item := ScanResult{
				Code:        c.winner.Code,
				Quantity:    q.Loose,
				Crated:      q.Crated > 0,
				CratedCount: q.Crated,
				Confidence:  c.winner.Confidence,
			}
			seen := map[string]bool{c.winner.Code: true}
			for _, alt := range c.alternates {
				if seen[alt.Code] {
					continue
				}
				seen[alt.Code] = true
				item.Candidates = append(item.Candidates, Candidate{Code: alt.Code, Confidence: alt.Confidence})
			}
			mu.Lock()
			items = append(items, item)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, fmt.Sprintf("quantity reads interrupted: %v", err))
	}
	return items, errs
}

// resolveText OCRs the screenshot for item name lines and resolves each
// through the catalog's fuzzy lookup. Lines below the confidence floor are
// reported in Errors with their best candidate instead of being accepted.
func (s *Scanner) resolveText(ctx context.Context, shot *image.NRGBA, opts Options, report *Report) {
	prepped := Threshold(EnhanceContrast(Grayscale(shot), 1.4), 140, true)
	octx, cancel := context.WithTimeout(ctx, opts.OCRTimeout)
	text, err := ocrImage(octx, prepped, letterWhitelist, gosseract.PSM_SPARSE_TEXT)
	cancel()
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("text resolution: %v", err))
		return
	}
	cat := s.catalog.Filter(opts.Faction)
	for _, line := range strings.Split(text, "\n") {
		q := parseQuantity(line)
		name := strings.TrimSpace(digitRunRE.ReplaceAllString(line, " "))
		if len(name) < 3 {
			continue
		}
		m, ok := cat.FindBestMatch(name, opts.MinConfidence)
		if !ok {
			if best := cat.TopMatches(name, 1, 0.3); len(best) > 0 {
				report.Errors = append(report.Errors, fmt.Sprintf(
					"unresolved text %q (closest %s at %.2f)", name, best[0].Entry.Code, best[0].Confidence))
			}
			continue
		}
		report.Items = append(report.Items, ScanResult{
			Code:        m.Entry.Code,
			Quantity:    q.Loose,
			Crated:      q.Crated > 0,
			CratedCount: q.Crated,
			Confidence:  m.Confidence,
		})
	}
}
