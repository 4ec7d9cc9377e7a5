package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
)

// TextParser handles plain text files. A form feed starts a new page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &Document{
		Title: titleFromFilename(filename, ".txt"),
	}
	current := outline.Page{Number: 1, Lines: []string{}}

	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\f")
		current.Lines = append(current.Lines, parts[0])
		for _, part := range parts[1:] {
			doc.Pages = append(doc.Pages, current)
			current = outline.Page{Number: current.Number + 1, Lines: []string{part}}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(current.Lines) > 0 || len(doc.Pages) > 0 {
		doc.Pages = append(doc.Pages, current)
	}
	return doc, nil
}
