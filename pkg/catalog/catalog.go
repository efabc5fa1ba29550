package catalog

import (
	"sort"
	"strings"

	"github.com/adrg/strutil/metrics"
)

// Faction restricts which part of the item catalog is considered during a scan.
type Faction string

const (
	FactionAll       Faction = "all"
	FactionColonials Faction = "colonials"
	FactionWardens   Faction = "wardens"
)

// ParseFaction maps a user-supplied faction string to a known value. Unknown
// or empty input falls back to FactionAll.
func ParseFaction(s string) Faction {
	switch Faction(strings.ToLower(strings.TrimSpace(s))) {
	case FactionColonials:
		return FactionColonials
	case FactionWardens:
		return FactionWardens
	}
	return FactionAll
}

// Category groups items the same way the stockpile UI does.
type Category string

const (
	SmallArms  Category = "SMALL_ARMS"
	HeavyArms  Category = "HEAVY_ARMS"
	Ammunition Category = "AMMUNITION"
	Utility    Category = "UTILITY"
	Medical    Category = "MEDICAL"
	Resources  Category = "RESOURCES"
	Uniforms   Category = "UNIFORMS"
	Vehicles   Category = "VEHICLES"
	Structures Category = "STRUCTURES"
	Supplies   Category = "SUPPLIES"
)

// Entry is one known item identity. InternalName is the normalized matching
// key used by fuzzy lookup; Code is the stable identifier stored with scan
// results. Entries are static reference data and never mutated at runtime.
type Entry struct {
	Code         string
	InternalName string
	DisplayName  string
	Category     Category
	// Faction is empty for items available to both factions.
	Faction Faction
	Aliases []string
}

// Match is the outcome of a fuzzy lookup.
type Match struct {
	Entry      *Entry
	Confidence float64
}

// Catalog holds the item reference data in a stable order. It is safe for
// concurrent readers; nothing mutates a Catalog after construction.
type Catalog struct {
	entries []Entry
	byCode  map[string]int
}

func New(entries []Entry) *Catalog {
	c := &Catalog{entries: entries, byCode: make(map[string]int, len(entries))}
	for i := range entries {
		c.byCode[entries[i].Code] = i
	}
	return c
}

// Default returns a catalog over the built-in item table.
func Default() *Catalog {
	return New(defaultItems)
}

func (c *Catalog) Entries() []Entry { return c.entries }

func (c *Catalog) Len() int { return len(c.entries) }

// ByCode looks up an entry by its stable code.
func (c *Catalog) ByCode(code string) (*Entry, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return nil, false
	}
	return &c.entries[i], true
}

// Position returns the entry's index in catalog order, used by callers that
// need a stable sort key for scan results. Unknown codes sort last.
func (c *Catalog) Position(code string) int {
	if i, ok := c.byCode[code]; ok {
		return i
	}
	return len(c.entries)
}

// Filter returns a catalog restricted to the given faction. Shared items
// (empty faction) are always retained. FactionAll returns the receiver.
func (c *Catalog) Filter(f Faction) *Catalog {
	if f == FactionAll || f == "" {
		return c
	}
	var out []Entry
	for _, e := range c.entries {
		if e.Faction == "" || e.Faction == f {
			out = append(out, e)
		}
	}
	return New(out)
}

// lev is the shared edit-distance metric. The default ReplaceCost of 2 counts
// a substitution as delete+insert; classic Levenshtein costs it 1.
var lev = func() *metrics.Levenshtein {
	m := metrics.NewLevenshtein()
	m.ReplaceCost = 1
	return m
}()

// Distance returns the classic Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	return lev.Distance(a, b)
}

// Similarity scores two strings in [0,1] as 1 - distance/max(len). Two empty
// strings are identical (1.0).
func Similarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(maxLen)
}

// Normalize produces the matching key form of free text: lower-cased, trimmed,
// inner whitespace collapsed.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

func (c *Catalog) score(norm string, e *Entry) float64 {
	best := Similarity(norm, Normalize(e.InternalName))
	for _, a := range e.Aliases {
		if s := Similarity(norm, Normalize(a)); s > best {
			best = s
		}
	}
	return best
}

// FindBestMatch resolves OCR text to the closest catalog entry, comparing the
// normalized input against every entry's internal name and aliases. Returns
// false when the best score is below minConfidence. Ties at the maximum score
// resolve to the first entry in catalog order; no secondary key is applied.
func (c *Catalog) FindBestMatch(text string, minConfidence float64) (Match, bool) {
	norm := Normalize(text)
	best := Match{Confidence: -1}
	for i := range c.entries {
		if s := c.score(norm, &c.entries[i]); s > best.Confidence {
			best = Match{Entry: &c.entries[i], Confidence: s}
		}
	}
	if best.Entry == nil || best.Confidence < minConfidence {
		return Match{}, false
	}
	return best, true
}

// TopMatches returns up to limit entries scoring at least floor against the
// input, best first. Used to surface alternates for manual review when a
// match is ambiguous.
func (c *Catalog) TopMatches(text string, limit int, floor float64) []Match {
	norm := Normalize(text)
	var out []Match
	for i := range c.entries {
		if s := c.score(norm, &c.entries[i]); s >= floor {
			out = append(out, Match{Entry: &c.entries[i], Confidence: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
