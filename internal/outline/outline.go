// Package outline infers a document outline (title, headings, paragraphs and
// bullet groups) from raw per-page text lines.
package outline

import "slices"

// Page is one page of raw extracted text, in reading order.
type Page struct {
	Number int      `json:"page_number"`
	Lines  []string `json:"lines"`
}

// Heading is a line classified as a heading, with its inferred nesting level.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// BulletGroup is one contiguous run of bullet lines.
type BulletGroup []string

// Outline is the structured result of line classification. It carries no
// reference back to the page or line a piece of text came from.
type Outline struct {
	Title        string        `json:"title"`
	Headings     []Heading     `json:"headings"`
	Paragraphs   []string      `json:"paragraphs"`
	BulletGroups []BulletGroup `json:"bullet_groups"`
}

// Empty returns an outline with non-nil, empty sequences.
func Empty() Outline {
	return Outline{
		Headings:     []Heading{},
		Paragraphs:   []string{},
		BulletGroups: []BulletGroup{},
	}
}

// Equal reports whether two outlines hold the same title and the same
// sequences in the same order. Nil and empty sequences compare equal.
func (o Outline) Equal(other Outline) bool {
	if o.Title != other.Title {
		return false
	}
	if !slices.Equal(o.Headings, other.Headings) {
		return false
	}
	if !slices.Equal(o.Paragraphs, other.Paragraphs) {
		return false
	}
	return slices.EqualFunc(o.BulletGroups, other.BulletGroups, func(a, b BulletGroup) bool {
		return slices.Equal(a, b)
	})
}

// Text flattens the outline into one string, used for content hashing.
func (o Outline) Text() string {
	n := len(o.Title)
	for _, h := range o.Headings {
		n += len(h.Text) + 1
	}
	for _, p := range o.Paragraphs {
		n += len(p) + 1
	}
	buf := make([]byte, 0, n)
	buf = append(buf, o.Title...)
	for _, h := range o.Headings {
		buf = append(buf, '\n')
		buf = append(buf, h.Text...)
	}
	for _, p := range o.Paragraphs {
		buf = append(buf, '\n')
		buf = append(buf, p...)
	}
	for _, g := range o.BulletGroups {
		for _, item := range g {
			buf = append(buf, '\n')
			buf = append(buf, item...)
		}
	}
	return string(buf)
}
