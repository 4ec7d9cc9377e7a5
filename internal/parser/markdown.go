package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Block structure is
// flattened back into plain lines: blocks are separated by blank lines and
// list items keep a list marker.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	lines := []string{}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		lines = appendBlock(lines, n, src)
	}

	return &Document{
		Title: titleFromFilename(filename, ".md", ".markdown"),
		Pages: []outline.Page{{Number: 1, Lines: lines}},
	}, nil
}

func appendBlock(lines []string, n ast.Node, src []byte) []string {
	switch node := n.(type) {
	case *ast.Heading:
		lines = append(separate(lines), strings.Join(blockLines(node, src), " "))
		return separate(lines)
	case *ast.List:
		return separate(appendList(separate(lines), node, src))
	case *ast.ThematicBreak:
		return separate(lines)
	}

	if n.Lines().Len() > 0 {
		return separate(append(lines, blockLines(n, src)...))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		lines = appendBlock(lines, c, src)
	}
	return lines
}

// appendList writes one line per item. Nested lists follow their parent item.
func appendList(lines []string, list *ast.List, src []byte) []string {
	i := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := string(list.Marker)
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d%c", list.Start+i, list.Marker)
		}
		var text []string
		var nested []*ast.List
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, sub)
				continue
			}
			text = append(text, blockLines(c, src)...)
		}
		lines = append(lines, marker+" "+strings.Join(text, " "))
		for _, sub := range nested {
			lines = appendList(lines, sub, src)
		}
		i++
	}
	return lines
}

// blockLines returns the raw source lines of a leaf block.
func blockLines(n ast.Node, src []byte) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := strings.TrimRight(string(seg.Value(src)), "\r\n")
		out = append(out, line)
	}
	return out
}
