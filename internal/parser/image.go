package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
)

// DefaultOCRLanguages covers Arabic and English lesson material.
const DefaultOCRLanguages = "ara+eng"

// ImageParser runs the tesseract binary over a scanned page image.
type ImageParser struct {
	Languages string
}

func (p *ImageParser) Parse(r io.Reader, filename string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	tmp, err := os.CreateTemp("", "lessongest-ocr-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	langs := p.Languages
	if langs == "" {
		langs = DefaultOCRLanguages
	}
	text, err := runTesseract(tmpPath, langs)
	if err != nil {
		return nil, &IngestError{Filename: filename, Op: "ocr", Err: err}
	}

	return &Document{
		Title: titleFromFilename(filename, ext),
		Pages: []outline.Page{{Number: 1, Lines: splitLines(text)}},
	}, nil
}

func runTesseract(path, langs string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), externalToolTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "tesseract", path, "stdout", "-l", langs)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	// tesseract ends its output with a form feed.
	return strings.TrimRight(string(out), "\f\n"), nil
}
