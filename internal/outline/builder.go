package outline

import "strings"

// Builder folds a stream of raw lines into an Outline. It keeps a paragraph
// buffer, a bullet buffer and a bullet-mode flag across page boundaries, so a
// paragraph or list split by a page break stays in one piece.
//
// A Builder is not safe for concurrent use; run one Builder per document.
type Builder struct {
	h Heuristics

	paragraph  strings.Builder
	bullets    []string
	bulletMode bool

	out      Outline
	seenPage bool
	finished bool
}

// NewBuilder returns a Builder using the given heuristics.
func NewBuilder(h Heuristics) *Builder {
	return &Builder{
		h:   h.normalized(),
		out: Empty(),
	}
}

// Build runs the whole page stream through a fresh Builder.
func Build(pages []Page, h Heuristics) Outline {
	b := NewBuilder(h)
	for _, p := range pages {
		b.AddPage(p)
	}
	return b.Finish()
}

// AddPage feeds one page. The title is the first line of the first page; a
// non-blank title line is consumed by the title and not folded into the body.
func (b *Builder) AddPage(p Page) {
	if b.finished {
		return
	}
	lines := p.Lines
	if !b.seenPage {
		b.seenPage = true
		if len(lines) > 0 {
			b.out.Title = strings.TrimSpace(lines[0])
			if b.out.Title != "" {
				lines = lines[1:]
			}
		}
	}
	for _, raw := range lines {
		b.AddLine(raw)
	}
}

// AddLine feeds a single raw line. Lines added after Finish are ignored.
func (b *Builder) AddLine(raw string) {
	if b.finished {
		return
	}
	line := strings.TrimSpace(raw)
	if line == "" {
		b.closeParagraph()
		b.closeBullets()
		return
	}

	kind := classify(line, b.h)
	switch kind.Kind {
	case KindHeading:
		b.closeParagraph()
		b.closeBullets()
		b.out.Headings = append(b.out.Headings, Heading{Text: line, Level: kind.Level})
	case KindBullet:
		b.closeParagraph()
		b.bulletMode = true
		b.bullets = append(b.bullets, line)
	default:
		if b.bulletMode {
			b.closeBullets()
		}
		if b.paragraph.Len() > 0 {
			b.paragraph.WriteByte(' ')
		}
		b.paragraph.WriteString(line)
	}
}

// Finish flushes any open paragraph or bullet group and returns the outline.
// Further calls return the same outline.
func (b *Builder) Finish() Outline {
	if !b.finished {
		b.closeParagraph()
		b.closeBullets()
		b.finished = true
	}
	return b.out
}

func (b *Builder) closeParagraph() {
	if b.paragraph.Len() == 0 {
		return
	}
	b.out.Paragraphs = append(b.out.Paragraphs, b.paragraph.String())
	b.paragraph.Reset()
}

func (b *Builder) closeBullets() {
	if len(b.bullets) > 0 {
		b.out.BulletGroups = append(b.out.BulletGroups, BulletGroup(b.bullets))
		b.bullets = nil
	}
	b.bulletMode = false
}
