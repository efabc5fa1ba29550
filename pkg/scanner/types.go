package scanner

// MatchCandidate is one accepted template hit: where an icon was found and
// how well it correlated. Transient, produced per scan, never persisted.
type MatchCandidate struct {
	Code       string
	X          int
	Y          int
	Confidence float64
}

// QuantityReading holds the loose and crated counts read from the label below
// an icon. Both default to zero when the label cannot be read.
type QuantityReading struct {
	Loose  int
	Crated int
}

// Candidate is an alternate identity for an ambiguous match, surfaced so a
// reviewer can disambiguate.
type Candidate struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

// ScanResult is one recognized inventory entry. Confidence is always in
// [0,1]; Quantity and CratedCount are never negative.
type ScanResult struct {
	Code        string      `json:"code"`
	Quantity    int         `json:"quantity"`
	Crated      bool        `json:"crated"`
	CratedCount int         `json:"cratedCount"`
	Confidence  float64     `json:"confidence"`
	Candidates  []Candidate `json:"candidates,omitempty"`
}

// Report is the scan envelope returned to callers: best-effort container
// identification, the recognized items, and every non-fatal issue hit along
// the way.
type Report struct {
	Name   string       `json:"name,omitempty"`
	Type   string       `json:"type,omitempty"`
	Items  []ScanResult `json:"items"`
	Errors []string     `json:"errors"`
}
