package outline

import "regexp"

// Heuristics holds the thresholds and patterns used by the line classifier.
// The zero value is valid and behaves like DefaultHeuristics.
type Heuristics struct {
	HeadingColonMaxLen int // Lines ending in ':' shorter than this are headings.
	UpperMaxLen        int // All upper-case lines shorter than this are headings.
	ShortHeadingLen    int // Non-numbered headings shorter than this get level 1.
	NumeralLevelCutoff int // Numbered headings below this value get level 2, others 3.

	// NumeralPattern must capture the numeral in group 1.
	NumeralPattern *regexp.Regexp
	// BulletMarkers are leading strings that mark a bullet line.
	BulletMarkers []string
	// EnumeratorPattern matches single-character list enumerators ("a.", "1)").
	EnumeratorPattern *regexp.Regexp
}

var (
	defaultNumeralPattern    = regexp.MustCompile(`^(\p{Nd}+)[.)]`)
	defaultEnumeratorPattern = regexp.MustCompile(`^[a-zA-Z0-9][.)]`)
	defaultBulletMarkers     = []string{"•", "-", "*"}
)

// DefaultHeuristics returns the standard thresholds.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		HeadingColonMaxLen: 100,
		UpperMaxLen:        50,
		ShortHeadingLen:    30,
		NumeralLevelCutoff: 10,
		NumeralPattern:     defaultNumeralPattern,
		BulletMarkers:      defaultBulletMarkers,
		EnumeratorPattern:  defaultEnumeratorPattern,
	}
}

// normalized fills unset fields from the defaults.
func (h Heuristics) normalized() Heuristics {
	d := DefaultHeuristics()
	if h.HeadingColonMaxLen <= 0 {
		h.HeadingColonMaxLen = d.HeadingColonMaxLen
	}
	if h.UpperMaxLen <= 0 {
		h.UpperMaxLen = d.UpperMaxLen
	}
	if h.ShortHeadingLen <= 0 {
		h.ShortHeadingLen = d.ShortHeadingLen
	}
	if h.NumeralLevelCutoff <= 0 {
		h.NumeralLevelCutoff = d.NumeralLevelCutoff
	}
	if h.NumeralPattern == nil {
		h.NumeralPattern = d.NumeralPattern
	}
	if h.BulletMarkers == nil {
		h.BulletMarkers = d.BulletMarkers
	}
	if h.EnumeratorPattern == nil {
		h.EnumeratorPattern = d.EnumeratorPattern
	}
	return h
}
