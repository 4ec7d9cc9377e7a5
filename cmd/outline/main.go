// Command outline prints the inferred outline of a lesson file.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	flag "github.com/spf13/pflag"

	"github.com/dgallion1/lessongest/internal/config"
	"github.com/dgallion1/lessongest/internal/outline"
	"github.com/dgallion1/lessongest/internal/parser"
	"github.com/dgallion1/lessongest/internal/render"
)

type options struct {
	format      string
	noFallback  bool
	languages   string
	artifact    string
	lang        string
	showVersion bool
}

// Version is set at build time via ldflags.
var Version = "dev"

var errUsage = errors.New("usage: outline [flags] <file>")

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("outline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.format, "format", "f", "json", "output format: json or yaml")
	fs.BoolVar(&o.noFallback, "no-ocr-fallback", false, "do not fall back to pdftotext for PDFs without a text layer")
	fs.StringVar(&o.languages, "ocr-lang", parser.DefaultOCRLanguages, "tesseract languages for images")
	fs.StringVarP(&o.artifact, "artifact", "a", "outline", "what to print: outline, deck, quiz or activities")
	fs.StringVar(&o.lang, "lang", "ar", "label language for rendered artifacts: ar or en")
	fs.BoolVarP(&o.showVersion, "version", "V", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return o, nil, err
	}
	if o.format != "json" && o.format != "yaml" {
		return o, nil, fmt.Errorf("unknown format %q", o.format)
	}
	switch o.artifact {
	case "outline", "deck", "quiz", "activities":
	default:
		return o, nil, fmt.Errorf("unknown artifact %q", o.artifact)
	}
	return o, fs.Args(), nil
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, files, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, "outline", Version)
		return 0
	}
	if len(files) != 1 {
		fmt.Fprintln(stderr, errUsage)
		return 2
	}

	v, err := buildArtifact(files[0], opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := write(stdout, v, opts.format); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func buildArtifact(path string, opts options) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := parser.Parse(f, path, parser.Options{
		FallbackPdftotext: !opts.noFallback,
		OCRLanguages:      opts.languages,
	})
	if err != nil {
		return nil, err
	}

	o := outline.Build(doc.Pages, config.Load().Heuristics())
	labels := render.LabelsFor(opts.lang)
	switch opts.artifact {
	case "outline":
		return o, nil
	case "deck":
		return render.BuildDeck(o, render.DeckOptions{Labels: labels, FallbackTitle: doc.Title}), nil
	case "quiz":
		return render.BuildQuiz(o, labels), nil
	case "activities":
		return render.BuildActivities(o, labels), nil
	}
	return o, nil
}

func write(w io.Writer, v any, format string) error {
	if format == "yaml" {
		// Round-trip through JSON so YAML keys follow the json tags.
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
