package render

import (
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
)

// SlideKind identifies the role of a slide in the deck.
type SlideKind string

const (
	SlideTitle    SlideKind = "title"
	SlideHeading  SlideKind = "heading"
	SlideBullets  SlideKind = "bullets"
	SlideActivity SlideKind = "activity"
	SlideSummary  SlideKind = "summary"
)

// Slide is one rendered slide. Items are body lines; Steps are indented
// sub-items used by the activity slide.
type Slide struct {
	Kind     SlideKind `json:"kind"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Level    int       `json:"level,omitempty"`
	Items    []string  `json:"items,omitempty"`
	Steps    []string  `json:"steps,omitempty"`
}

// Deck is a slide deck derived from an outline.
type Deck struct {
	Title       string  `json:"title"`
	RightToLeft bool    `json:"right_to_left"`
	Slides      []Slide `json:"slides"`
}

// DeckOptions tune deck generation.
type DeckOptions struct {
	Labels Labels
	// FallbackTitle is used when the outline has no title (usually the filename).
	FallbackTitle string
	// MaxSlideTokens bounds the body text on one slide; longer bodies continue
	// on extra slides. Zero uses DefaultMaxSlideTokens.
	MaxSlideTokens int
}

const (
	DefaultMaxSlideTokens = 120
	relatedParagraphLimit = 2
	summaryPointLimit     = 5
)

// BuildDeck lays out the slides for an outline: a title slide, one slide per
// heading, one per bullet group, an activity slide and a summary slide.
func BuildDeck(o outline.Outline, opts DeckOptions) Deck {
	labels := opts.Labels
	if labels.KeyPoints == "" {
		labels = ArabicLabels()
	}
	budget := opts.MaxSlideTokens
	if budget <= 0 {
		budget = DefaultMaxSlideTokens
	}

	title := o.Title
	if title == "" {
		title = opts.FallbackTitle
	}

	deck := Deck{Title: title, RightToLeft: labels.RightToLeft}
	deck.Slides = append(deck.Slides, Slide{
		Kind:     SlideTitle,
		Title:    title,
		Subtitle: labels.DeckSubtitle,
	})

	for i, h := range o.Headings {
		body := relatedParagraphs(o, i)
		deck.Slides = appendPaged(deck.Slides, Slide{
			Kind:  SlideHeading,
			Title: h.Text,
			Level: h.Level,
		}, body, budget, labels.ContinuedSuffix)
	}

	for _, group := range o.BulletGroups {
		deck.Slides = appendPaged(deck.Slides, Slide{
			Kind:  SlideBullets,
			Title: labels.KeyPoints,
		}, group, budget, labels.ContinuedSuffix)
	}

	deck.Slides = append(deck.Slides, Slide{
		Kind:  SlideActivity,
		Title: labels.ActivityTitle,
		Items: []string{labels.ActivityIntro},
		Steps: labels.ActivitySteps,
	})

	deck.Slides = append(deck.Slides, Slide{
		Kind:  SlideSummary,
		Title: labels.SummaryTitle,
		Items: summaryPoints(o),
	})

	return deck
}

// appendPaged adds base with body as its items, continuing on extra slides
// when the body does not fit.
func appendPaged(slides []Slide, base Slide, body []string, budget int, suffix string) []Slide {
	if len(body) == 0 {
		return append(slides, base)
	}
	for i, items := range paginate(body, budget) {
		s := base
		if i > 0 {
			s.Title = base.Title + suffix
		}
		s.Items = items
		slides = append(slides, s)
	}
	return slides
}

// relatedParagraphs picks up to two paragraphs for the heading at index i:
// paragraphs that mention the heading text but not the next heading's text.
// The last heading takes any paragraph mentioning it.
func relatedParagraphs(o outline.Outline, i int) []string {
	text := o.Headings[i].Text
	var next string
	if i+1 < len(o.Headings) {
		next = o.Headings[i+1].Text
	}

	var related []string
	for _, p := range o.Paragraphs {
		if !strings.Contains(p, text) {
			continue
		}
		if next != "" && strings.Contains(p, next) {
			continue
		}
		related = append(related, p)
		if len(related) == relatedParagraphLimit {
			break
		}
	}
	return related
}

// summaryPoints lists heading texts, then the first item of each bullet group.
func summaryPoints(o outline.Outline) []string {
	var points []string
	for _, h := range o.Headings {
		points = append(points, h.Text)
	}
	for _, g := range o.BulletGroups {
		if len(g) > 0 {
			points = append(points, g[0])
		}
	}
	if len(points) > summaryPointLimit {
		points = points[:summaryPointLimit]
	}
	return points
}
