package maths

import (
	"testing"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/testutil"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

var english = format.New("en", "")

func TestSquareRoot(t *testing.T) {
	tests := []struct {
		input   string
		root    string
		perfect string
		exact   string
	}{
		{"16", "4.00", "Yes", "4"},
		{"0", "0.00", "Yes", "0"},
		{"2", "1.41", "No", "√2"},
		{"72", "8.49", "No", "6√2"},
		{"2.25", "1.50", "No", "≈ 1.500000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := SquareRoot().Evaluate(english, widget.FormOf(map[string]string{"number": tt.input}))
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			for label, expected := range map[string]string{
				"Square root":    tt.root,
				"Perfect square": tt.perfect,
				"Exact result":   tt.exact,
			} {
				if got, _ := r.Value(label); got != expected {
					t.Errorf("%s = %q, expected %q", label, got, expected)
				}
			}
		})
	}

	_, err := SquareRoot().Evaluate(english, widget.FormOf(map[string]string{"number": "-4"}))
	if _, ok := validation.AsInputError(err); !ok {
		t.Errorf("expected input error for negative number, got %v", err)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		expected string
	}{
		{"Of", map[string]string{"mode": "of", "x": "15", "y": "200"}, "30.00"},
		{"Is what", map[string]string{"mode": "is-what", "x": "50", "y": "200"}, "25.00%"},
		{"Increase", map[string]string{"mode": "change", "x": "80", "y": "100"}, "25.00%"},
		{"Decrease", map[string]string{"mode": "change", "x": "100", "y": "80"}, "-20.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Percentage().Evaluate(english, widget.FormOf(tt.values))
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got, _ := r.Value("Result"); got != tt.expected {
				t.Errorf("Result = %q, expected %q", got, tt.expected)
			}
		})
	}

	for _, values := range []map[string]string{
		{"mode": "is-what", "x": "5", "y": "0"},
		{"mode": "change", "x": "0", "y": "5"},
	} {
		if _, err := Percentage().Evaluate(english, widget.FormOf(values)); err == nil {
			t.Errorf("expected error for %v", values)
		}
	}
}

func TestStatistics(t *testing.T) {
	r, err := Statistics().Evaluate(english, widget.FormOf(map[string]string{"values": "2, 4, 4, 4, 5, 5, 7, 9"}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	expected := map[string]string{
		"Count":              "8",
		"Sum":                "40.00",
		"Mean":               "5.00",
		"Median":             "4.50",
		"Mode":               "4.00",
		"Range":              "7.00",
		"Standard deviation": "2.00",
	}
	got := testutil.RowValues(r)
	for label, want := range expected {
		if got[label] != want {
			t.Errorf("%s = %q, expected %q", label, got[label], want)
		}
	}

	r, err = Statistics().Evaluate(english, widget.FormOf(map[string]string{"values": "1\n2\n3"}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, _ := r.Value("Mode"); got != "None" {
		t.Errorf("Mode = %q, expected None", got)
	}

	for _, input := range []string{"", "1, x"} {
		if _, err := Statistics().Evaluate(english, widget.FormOf(map[string]string{"values": input})); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
