package parser

import (
	"strings"
	"testing"
)

func TestTextParser_LinesArePreserved(t *testing.T) {
	input := "Lesson One\n\n1. Basics\nFirst paragraph line one.\nFirst paragraph line two.\n\n- item"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}

	want := []string{
		"Lesson One",
		"",
		"1. Basics",
		"First paragraph line one.",
		"First paragraph line two.",
		"",
		"- item",
	}
	got := doc.Pages[0].Lines
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(doc.Pages))
	}
}

func TestTextParser_FormFeedSplitsPages(t *testing.T) {
	input := "page one\nstill one\fpage two\n\fpage three"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "paged.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}
	for i, page := range doc.Pages {
		if page.Number != i+1 {
			t.Errorf("page[%d]: expected number %d, got %d", i, i+1, page.Number)
		}
	}
	if doc.Pages[1].Lines[0] != "page two" {
		t.Errorf("expected second page to start with %q, got %q", "page two", doc.Pages[1].Lines[0])
	}
	if doc.Pages[2].Lines[0] != "page three" {
		t.Errorf("expected third page to start with %q, got %q", "page three", doc.Pages[2].Lines[0])
	}
}

func TestTextParser_WhitespaceOnlyLinesKept(t *testing.T) {
	// Blank detection belongs to the outline builder, not ingestion.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages[0].Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(doc.Pages[0].Lines))
	}
	if doc.Pages[0].Lines[1] != "   " {
		t.Errorf("expected whitespace line to be kept verbatim, got %q", doc.Pages[0].Lines[1])
	}
}
