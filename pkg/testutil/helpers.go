// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/calc-widgets/internal/widget"
)

// FindRow finds a row by label in a calculator result.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(result *widget.Result, label string) *widget.Row {
	if result == nil {
		return nil
	}
	for i := range result.Rows {
		if result.Rows[i].Label == label {
			return &result.Rows[i]
		}
	}
	return nil
}

// RowValues maps every row label to its value. Later duplicates win.
func RowValues(result widget.Result) map[string]string {
	values := make(map[string]string, len(result.Rows))
	for _, row := range result.Rows {
		values[row.Label] = row.Value
	}
	return values
}
