package scanner

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"

	"quartermaster/pkg/catalog"
)

// IconTemplate is one reference icon image. Templates are read-only once
// loaded and shared across concurrent scans.
type IconTemplate struct {
	Code        string
	DisplayName string
	Image       *image.NRGBA
	Width       int
	Height      int
}

// TemplateLibrary owns the set of icon templates a scanner matches against.
// Reads take a snapshot of the current slice; Reload swaps in a freshly
// loaded slice so in-flight scans keep a consistent view.
type TemplateLibrary struct {
	mu        sync.RWMutex
	templates []IconTemplate
	dir       string
	cat       *catalog.Catalog
}

// NewTemplateLibrary builds a library from pre-loaded templates. Used by
// tests and by callers that source icons from somewhere other than a
// directory.
func NewTemplateLibrary(templates []IconTemplate) *TemplateLibrary {
	return &TemplateLibrary{templates: templates}
}

// LoadTemplateLibrary reads every PNG in dir as an icon template. The file
// base name is the item code; display names come from the catalog when the
// code is known. A directory with no usable icons yields an empty library,
// which is valid (scans report "no templates configured").
func LoadTemplateLibrary(dir string, cat *catalog.Catalog) (*TemplateLibrary, error) {
	l := &TemplateLibrary{dir: dir, cat: cat}
	templates, err := loadTemplatesFromDir(dir, cat)
	if err != nil {
		return nil, err
	}
	l.templates = templates
	return l, nil
}

func loadTemplatesFromDir(dir string, cat *catalog.Catalog) ([]IconTemplate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}
	var out []IconTemplate
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		img, err := imaging.Open(path)
		if err != nil {
			// one bad icon file must not sink the rest of the library
			log.Printf("template load: skipping %s: %v", e.Name(), err)
			continue
		}
		nrgba := imaging.Clone(img)
		code := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		display := code
		if cat != nil {
			if entry, ok := cat.ByCode(code); ok {
				display = entry.DisplayName
			}
		}
		out = append(out, IconTemplate{
			Code:        code,
			DisplayName: display,
			Image:       nrgba,
			Width:       nrgba.Bounds().Dx(),
			Height:      nrgba.Bounds().Dy(),
		})
	}
	return out, nil
}

// Templates returns the current template snapshot. The returned slice must be
// treated as read-only.
func (l *TemplateLibrary) Templates() []IconTemplate {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.templates
}

func (l *TemplateLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.templates)
}

// Reload re-reads the template directory and swaps the new set in atomically.
// No-op for libraries not backed by a directory.
func (l *TemplateLibrary) Reload() error {
	if l.dir == "" {
		return nil
	}
	templates, err := loadTemplatesFromDir(l.dir, l.cat)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.templates = templates
	l.mu.Unlock()
	log.Printf("template library reloaded: %d icons from %s", len(templates), l.dir)
	return nil
}

// Watch reloads the library whenever the backing directory changes. Blocks
// until ctx is cancelled. Reload failures are logged and the previous
// template set stays active.
func (l *TemplateLibrary) Watch(ctx context.Context) error {
	if l.dir == "" {
		return fmt.Errorf("template library has no backing directory")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("template watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watch %s: %w", l.dir, err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := l.Reload(); err != nil {
				log.Printf("template reload after %s: %v", ev.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("template watcher error: %v", err)
		}
	}
}
