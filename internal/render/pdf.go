package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// RGB is a color in 0-255 components.
type RGB struct{ R, G, B int }

// ColorScheme assigns colors to deck elements.
type ColorScheme struct {
	Title      RGB
	Heading    RGB
	Subheading RGB
	Text       RGB
	Background RGB
	Accent     RGB
}

var colorSchemes = map[string]ColorScheme{
	"default": {
		Title:      RGB{89, 49, 150},
		Heading:    RGB{0, 112, 192},
		Subheading: RGB{0, 176, 80},
		Text:       RGB{0, 0, 0},
		Background: RGB{255, 255, 255},
		Accent:     RGB{255, 192, 0},
	},
	"colorful": {
		Title:      RGB{192, 0, 0},
		Heading:    RGB{0, 112, 192},
		Subheading: RGB{112, 48, 160},
		Text:       RGB{0, 0, 0},
		Background: RGB{255, 255, 255},
		Accent:     RGB{255, 192, 0},
	},
	"minimal": {
		Title:      RGB{0, 0, 0},
		Heading:    RGB{68, 68, 68},
		Subheading: RGB{102, 102, 102},
		Text:       RGB{0, 0, 0},
		Background: RGB{255, 255, 255},
		Accent:     RGB{0, 112, 192},
	},
}

// Scheme returns the named color scheme, or the default one.
func Scheme(name string) ColorScheme {
	if s, ok := colorSchemes[name]; ok {
		return s
	}
	return colorSchemes["default"]
}

// PDFOptions control deck PDF output.
type PDFOptions struct {
	Scheme ColorScheme
	// FontPath is a UTF-8 TrueType font. Without it the core Helvetica font is
	// used and text is transliterated to cp1252, which cannot show Arabic.
	FontPath string
}

const (
	slideWidth  = 10.0 // inches
	slideHeight = 7.5
	slideMargin = 0.6
	ptPerInch   = 72.0
)

// WriteDeckPDF renders the deck as a landscape PDF, one page per slide.
func WriteDeckPDF(w io.Writer, deck Deck, opts PDFOptions) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: slideHeight, Ht: slideWidth},
	})
	pdf.SetMargins(slideMargin, slideMargin, slideMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(deck.Title, true)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontPath != "" {
		family = "deck"
		pdf.SetFontLocation(filepath.Dir(opts.FontPath))
		file := filepath.Base(opts.FontPath)
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(family, style, file)
		}
		tr = func(s string) string { return s }
	}

	r := &slideWriter{pdf: pdf, family: family, tr: tr, scheme: opts.Scheme, align: "L"}
	if deck.RightToLeft {
		r.align = "R"
	}
	for _, s := range deck.Slides {
		r.slide(s)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("render slide %q: %w", s.Title, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write deck pdf: %w", err)
	}
	return nil
}

type slideWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
	scheme ColorScheme
	align  string
}

func (r *slideWriter) slide(s Slide) {
	pdf := r.pdf
	pdf.AddPage()

	bg := r.scheme.Background
	pdf.SetFillColor(bg.R, bg.G, bg.B)
	pdf.Rect(0, 0, slideWidth, slideHeight, "F")

	if s.Kind == SlideTitle {
		pdf.SetY(slideHeight / 3)
		r.text(s.Title, "B", 44, r.scheme.Title, "C")
		if s.Subtitle != "" {
			pdf.Ln(0.2)
			r.text(s.Subtitle, "", 28, r.scheme.Heading, "C")
		}
		return
	}

	accent := r.scheme.Accent
	pdf.SetFillColor(accent.R, accent.G, accent.B)
	pdf.Rect(0, 0, slideWidth, 0.15, "F")

	pdf.SetY(slideMargin)
	titleColor := r.scheme.Title
	if s.Level >= 2 {
		titleColor = r.scheme.Heading
	}
	r.text(s.Title, "B", 40, titleColor, r.align)
	pdf.Ln(0.25)

	for i, item := range s.Items {
		if s.Kind == SlideActivity && i == 0 {
			r.text(item, "I", 28, r.scheme.Heading, r.align)
			continue
		}
		r.text(item, "", 24, r.scheme.Text, r.align)
		pdf.Ln(0.08)
	}
	for _, step := range s.Steps {
		pdf.SetX(slideMargin + 0.4)
		r.text(step, "", 24, r.scheme.Subheading, r.align)
	}
}

func (r *slideWriter) text(s, style string, size float64, c RGB, align string) {
	r.pdf.SetFont(r.family, style, size)
	r.pdf.SetTextColor(c.R, c.G, c.B)
	lineHeight := size / ptPerInch * 1.25
	r.pdf.MultiCell(0, lineHeight, r.tr(s), "", align, false)
}
