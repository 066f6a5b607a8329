package widget

// Row is one labelled output figure.
type Row struct {
	Label    string
	Value    string
	Emphasis bool
}

// Table is a tabular output such as an amortization schedule.
type Table struct {
	Caption string
	Header  []string
	Rows    [][]string
}

// Result is the rendering model produced by a successful calculation. It is
// built fresh on every evaluation and holds only display strings, so equal
// inputs always produce equal results.
type Result struct {
	Headline string
	Rows     []Row
	Tables   []Table
	Notes    []string
	// Summary is the plain-text message used by the share button.
	Summary string
}

// Add appends a row.
func (r *Result) Add(label, value string) {
	r.Rows = append(r.Rows, Row{Label: label, Value: value})
}

// Emphasize appends a highlighted row.
func (r *Result) Emphasize(label, value string) {
	r.Rows = append(r.Rows, Row{Label: label, Value: value, Emphasis: true})
}

// Note appends an explanatory note.
func (r *Result) Note(note string) {
	r.Notes = append(r.Notes, note)
}

// Value returns the value of the first row with label.
func (r Result) Value(label string) (string, bool) {
	for _, row := range r.Rows {
		if row.Label == label {
			return row.Value, true
		}
	}
	return "", false
}
