package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Block elements become lines separated by
// blank lines; list items become bullet lines.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &IngestError{Filename: filename, Op: "parse html", Err: err}
	}

	doc := &Document{
		Title: titleFromFilename(filename, ".html", ".htm"),
	}
	// Extract title from <title> tag if present.
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	lines := []string{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				if t := textContent(n); t != "" {
					lines = separate(append(separate(lines), t))
				}
				return
			case "li":
				if t := textContent(n); t != "" {
					if !hasBulletMarker(t) {
						t = "• " + t
					}
					lines = append(lines, t)
				}
				return
			case "p", "td", "th", "blockquote", "pre", "dt", "dd", "figcaption":
				if t := textContent(n); t != "" {
					lines = separate(append(lines, t))
				}
				return
			case "ul", "ol", "table", "br", "hr":
				lines = separate(lines)
				defer func() { lines = separate(lines) }()
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	doc.Pages = []outline.Page{{Number: 1, Lines: lines}}
	return doc, nil
}

// textContent joins the text of n's subtree, collapsing whitespace runs.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
