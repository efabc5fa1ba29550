package catalog

import "testing"

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "rifle crate", "12.7mm"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Fatalf("Similarity(%q,%q) expected 1.0 got %v", s, s, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"rifle", "rifles"},
		{"bmats", "rmats"},
		{"", "shovel"},
		{"garrison supplies", "soldier supplies"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Fatalf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestDistanceProperties(t *testing.T) {
	if d := Distance("", "rifle"); d != 5 {
		t.Fatalf("Distance(\"\", rifle) expected 5 got %d", d)
	}
	if d := Distance("rifle", "rifle"); d != 0 {
		t.Fatalf("Distance(x, x) expected 0 got %d", d)
	}
	// classic single-substitution cost
	if d := Distance("rifle crate", "rifle crafe"); d != 1 {
		t.Fatalf("expected substitution cost 1 got %d", d)
	}
}

func TestFindBestMatchFloor(t *testing.T) {
	c := Default()
	if m, ok := c.FindBestMatch("zzqqxxwwyy", 0.6); ok {
		t.Fatalf("expected no match for gibberish, got %s at %v", m.Entry.Code, m.Confidence)
	}
	// every accepted match respects the floor
	for _, text := range []string{"rifle", "bmats", "garison suplies", "shvel"} {
		if m, ok := c.FindBestMatch(text, 0.6); ok && m.Confidence < 0.6 {
			t.Fatalf("match %s for %q below floor: %v", m.Entry.Code, text, m.Confidence)
		}
	}
}

func TestFindBestMatchOCRNoise(t *testing.T) {
	// "Rifle Crafe" is one substitution away from the "rifle crate" alias.
	c := Default()
	m, ok := c.FindBestMatch("Rifle Crafe", 0.6)
	if !ok {
		t.Fatalf("expected a match for 'Rifle Crafe'")
	}
	if m.Entry.Code != "rifle" {
		t.Fatalf("expected rifle got %s", m.Entry.Code)
	}
	if m.Confidence < 0.89 || m.Confidence > 0.92 {
		t.Fatalf("expected similarity around 0.9 got %v", m.Confidence)
	}
}

func TestFilterFaction(t *testing.T) {
	c := Default()
	wardens := c.Filter(FactionWardens)
	if _, ok := wardens.ByCode("argenti"); ok {
		t.Fatalf("colonial rifle should be filtered out for wardens")
	}
	if _, ok := wardens.ByCode("loughcaster"); !ok {
		t.Fatalf("warden rifle missing after filter")
	}
	if _, ok := wardens.ByCode("bmats"); !ok {
		t.Fatalf("shared item missing after filter")
	}
	if got := c.Filter(FactionAll); got != c {
		t.Fatalf("FactionAll filter should return the same catalog")
	}
}

func TestPositionStable(t *testing.T) {
	c := Default()
	if c.Position("rifle") >= c.Position("bmats") {
		t.Fatalf("catalog order not preserved by Position")
	}
	if c.Position("no_such_item") != c.Len() {
		t.Fatalf("unknown codes must sort last")
	}
}

func TestParseFaction(t *testing.T) {
	if ParseFaction(" Wardens ") != FactionWardens {
		t.Fatalf("expected wardens")
	}
	if ParseFaction("anything-else") != FactionAll {
		t.Fatalf("unknown faction should fall back to all")
	}
}
