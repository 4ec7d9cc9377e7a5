package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
)

// ErrUnsupportedFormat is returned for file extensions with no parser.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Document is the ingestion result: a filename-derived title and the raw
// text lines of every page, in order.
type Document struct {
	Title string
	Pages []outline.Page
}

// Parser converts raw document bytes into pages of text lines.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// Options tune parsers that shell out to external tools.
type Options struct {
	FallbackPdftotext bool
	OCRLanguages      string
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".png":      true,
	".jpg":      true,
	".jpeg":     true,
	".bmp":      true,
	".tif":      true,
	".tiff":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return &ImageParser{Languages: opts.OCRLanguages}, nil
	default:
		return nil, &IngestError{Filename: filename, Op: "detect format", Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// IngestError reports a file that could not be turned into pages. Retrying
// the same input will not help, so callers should surface it rather than retry.
type IngestError struct {
	Filename string
	Op       string
	Err      error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s: %s: %v", e.Filename, e.Op, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// Retryable is always false for ingestion failures.
func (e *IngestError) Retryable() bool { return false }

// Parse picks a parser for filename and runs it.
func Parse(r io.Reader, filename string, opts Options) (*Document, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(r, filename)
	if err != nil {
		var ie *IngestError
		if errors.As(err, &ie) {
			return nil, err
		}
		return nil, &IngestError{Filename: filename, Op: "parse", Err: err}
	}
	return doc, nil
}

// titleFromFilename strips the directory and any of the given extensions.
func titleFromFilename(filename string, exts ...string) string {
	name := filepath.Base(filename)
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// separate ends the current block with a blank line. It never starts the
// page with one or doubles one, so the first block stays on the first line.
func separate(lines []string) []string {
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		return lines
	}
	return append(lines, "")
}

// splitLines splits extracted text into lines, accepting \r\n and \r endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
