// Package output provides utilities for printing calculator results on the
// command line.
package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/iwvelando/calc-widgets/internal/widget"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, title string, result widget.Result) error {
	pw := &printer{w: w}

	pw.printf("--- %s ---\n", title)
	if result.Headline != "" && result.Headline != title {
		pw.printf("%s\n", result.Headline)
	}

	width := 0
	for _, row := range result.Rows {
		if n := utf8.RuneCountInString(row.Label); n > width {
			width = n
		}
	}
	for _, row := range result.Rows {
		marker := " "
		if row.Emphasis {
			marker = "*"
		}
		pad := width - utf8.RuneCountInString(row.Label)
		pw.printf("%s %s%s | %s\n", marker, row.Label, strings.Repeat(" ", pad), row.Value)
	}

	for _, t := range result.Tables {
		pw.printf("\n")
		if t.Caption != "" {
			pw.printf("%s\n", t.Caption)
		}
		widths := columnWidths(t)
		if len(t.Header) > 0 {
			pw.printf("%s\n", joinPadded(t.Header, widths))
			underline := make([]string, len(widths))
			for i, n := range widths {
				underline[i] = strings.Repeat("_", n)
			}
			pw.printf("%s\n", joinPadded(underline, widths))
		}
		for _, row := range t.Rows {
			pw.printf("%s\n", joinPadded(row, widths))
		}
	}

	if len(result.Notes) > 0 {
		pw.printf("\n")
		for _, note := range result.Notes {
			pw.printf("Note: %s\n", note)
		}
	}
	return pw.err
}

// CsvFormat writes the result rows as "label","value" lines followed by any
// tables, separated by a blank line.
func CsvFormat(w io.Writer, result widget.Result) error {
	pw := &printer{w: w}
	pw.printf("%s\n", csvLine([]string{"label", "value"}))
	for _, row := range result.Rows {
		pw.printf("%s\n", csvLine([]string{row.Label, row.Value}))
	}
	for _, t := range result.Tables {
		pw.printf("\n")
		if len(t.Header) > 0 {
			pw.printf("%s\n", csvLine(t.Header))
		}
		for _, row := range t.Rows {
			pw.printf("%s\n", csvLine(row))
		}
	}
	return pw.err
}

// CsvString returns CsvFormat's output as a string.
func CsvString(result widget.Result) string {
	var b strings.Builder
	_ = CsvFormat(&b, result)
	return b.String()
}

func csvLine(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func columnWidths(t widget.Table) []int {
	var widths []int
	measure := func(cells []string) {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}
	return widths
}

func joinPadded(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c))
	}
	return strings.TrimRight(strings.Join(padded, " | "), " ")
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
