package parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/dgallion1/lessongest/internal/outline"
)

// CSVParser handles CSV files. The header row becomes an upper-case heading
// line and each data row a "header: value" body line; rows are grouped into
// blocks separated by blank lines.
type CSVParser struct{}

// csvBatchSize is the number of rows per block.
const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &IngestError{Filename: filename, Op: "parse csv", Err: err}
	}

	doc := &Document{
		Title: titleFromFilename(filename, ".csv"),
	}
	lines := []string{}
	if len(records) > 0 {
		headers := records[0]
		lines = append(lines, strings.ToUpper(strings.Join(headers, " / ")), "")

		for i, row := range records[1:] {
			if i > 0 && i%csvBatchSize == 0 {
				lines = append(lines, "")
			}
			lines = append(lines, csvRowLine(headers, row))
		}
	}

	doc.Pages = []outline.Page{{Number: 1, Lines: lines}}
	return doc, nil
}

func csvRowLine(headers, row []string) string {
	var text strings.Builder
	for j, cell := range row {
		if j > 0 {
			text.WriteString(", ")
		}
		if j < len(headers) {
			text.WriteString(headers[j] + ": " + cell)
		} else {
			text.WriteString(cell)
		}
	}
	// A trailing colon (empty last cell) would make the row look like a heading.
	return strings.TrimRight(strings.TrimSpace(text.String()), ":")
}
