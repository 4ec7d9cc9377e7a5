package outline

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the classification tag of a single line.
type Kind int

const (
	KindBody Kind = iota
	KindHeading
	KindBullet
)

// LineKind is the result of classifying a line. Level is set only for headings.
type LineKind struct {
	Kind  Kind
	Level int
}

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBullet:
		return "bullet"
	default:
		return "body"
	}
}

// Classify decides whether a trimmed, non-empty line is a heading, a bullet
// item or body text. Heading rules are checked before bullet rules, so a line
// such as "1. Intro" is always a heading even though "1." is also a valid
// single-character enumerator.
func Classify(line string, h Heuristics) LineKind {
	h = h.normalized()
	return classify(line, h)
}

func classify(line string, h Heuristics) LineKind {
	if isHeading(line, h) {
		return LineKind{Kind: KindHeading, Level: headingLevel(line, h)}
	}
	if isBullet(line, h) {
		return LineKind{Kind: KindBullet}
	}
	return LineKind{Kind: KindBody}
}

func isHeading(line string, h Heuristics) bool {
	if h.NumeralPattern.MatchString(line) {
		return true
	}
	n := utf8.RuneCountInString(line)
	if n < h.HeadingColonMaxLen && strings.HasSuffix(line, ":") {
		return true
	}
	return n < h.UpperMaxLen && isUpper(line)
}

func isBullet(line string, h Heuristics) bool {
	for _, m := range h.BulletMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return h.EnumeratorPattern.MatchString(line)
}

func headingLevel(line string, h Heuristics) int {
	if m := h.NumeralPattern.FindStringSubmatch(line); m != nil {
		if numeralBelow(m[1], h.NumeralLevelCutoff) {
			return 2
		}
		return 3
	}
	if utf8.RuneCountInString(line) < h.ShortHeadingLen {
		return 1
	}
	return 2
}

// isUpper reports whether s has at least one cased letter and no lower-case
// or title-case letters. Cased includes the Other_Uppercase and
// Other_Lowercase properties, so "Ⅻ" is upper and "ª" is lower.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Lower, unicode.Other_Lowercase, unicode.Title):
			return false
		case unicode.In(r, unicode.Upper, unicode.Other_Uppercase):
			cased = true
		}
	}
	return cased
}

// numeralBelow reports whether the decimal numeral s is less than limit.
// s may use any Unicode decimal digits. Values that overflow are never below.
func numeralBelow(s string, limit int) bool {
	v := 0
	for _, r := range s {
		d := digitValue(r)
		if v > (math.MaxInt-d)/10 {
			return false
		}
		v = v*10 + d
		if v >= limit {
			return false
		}
	}
	return true
}

// digitValue returns the value of a decimal digit rune. Every Nd range starts
// at a zero and spans whole runs of ten, so the offset into the range mod 10
// is the value.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	for _, rr := range unicode.Nd.R16 {
		if lo, hi := rune(rr.Lo), rune(rr.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	for _, rr := range unicode.Nd.R32 {
		if lo, hi := rune(rr.Lo), rune(rr.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	return 0
}
