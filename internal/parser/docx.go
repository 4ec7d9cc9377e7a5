package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Word paragraphs become lines; styling is
// translated into the plain-text cues a PDF extraction would show.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "lessongest-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, &IngestError{Filename: filename, Op: "parse docx", Err: err}
	}

	lines := []string{}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		style := docxStyle(para)

		switch {
		case text == "":
			lines = separate(lines)
		case docxHeadingLevel(style) > 0:
			lines = separate(append(separate(lines), text))
		case isDocxListStyle(style):
			if !hasBulletMarker(text) {
				text = "• " + text
			}
			lines = append(lines, text)
		default:
			lines = separate(append(lines, text))
		}
	}

	return &Document{
		Title: titleFromFilename(filename, ".docx"),
		Pages: []outline.Page{{Number: 1, Lines: lines}},
	}, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	switch s {
	case "title":
		return 1
	case "heading1", "heading2", "heading3", "heading4", "heading5", "heading6":
		return int(s[len(s)-1] - '0')
	}
	return 0
}

func isDocxListStyle(style string) bool {
	return strings.Contains(strings.ToLower(style), "list")
}

func hasBulletMarker(text string) bool {
	return strings.HasPrefix(text, "•") || strings.HasPrefix(text, "-") || strings.HasPrefix(text, "*")
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
