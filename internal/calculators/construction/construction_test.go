package construction

import (
	"testing"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

var english = format.New("en", "")

func TestPaint(t *testing.T) {
	r, err := Paint().Evaluate(english, widget.FormOf(map[string]string{
		"area":     "50",
		"openings": "10",
		"waste":    "0",
	}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, _ := r.Value("Paintable area"); got != "40.00 m²" {
		t.Errorf("Paintable area = %q", got)
	}
	if got, _ := r.Value("Paint needed"); got != "8.00 L" {
		t.Errorf("Paint needed = %q", got)
	}
}

func TestPaintRejections(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		field   string
		message string
	}{
		{"Openings exceed area", map[string]string{"area": "10", "openings": "12"}, "openings", "Openings area exceeds total area."},
		{"Zero area", map[string]string{"area": "0"}, "area", "Wall area must be greater than zero."},
		{"Zero coverage", map[string]string{"area": "10", "coverage": "0"}, "coverage", "Coverage must be greater than zero."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Paint().Evaluate(english, widget.FormOf(tt.values))
			inputErr, ok := validation.AsInputError(err)
			if !ok {
				t.Fatalf("expected input error, got %v", err)
			}
			if inputErr.Field != tt.field || inputErr.Message != tt.message {
				t.Errorf("got %s: %q", inputErr.Field, inputErr.Message)
			}
		})
	}
}

func TestTiles(t *testing.T) {
	r, err := Tiles().Evaluate(english, widget.FormOf(map[string]string{
		"area":   "10",
		"length": "50",
		"width":  "50",
		"perBox": "6",
	}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	// 40 tiles plus 10% waste.
	if got, _ := r.Value("Tiles needed"); got != "44" {
		t.Errorf("Tiles needed = %q", got)
	}
	if got, _ := r.Value("Boxes"); got != "8" {
		t.Errorf("Boxes = %q", got)
	}
}

func TestConcrete(t *testing.T) {
	r, err := Concrete().Evaluate(english, widget.FormOf(map[string]string{
		"length": "3",
		"width":  "2",
		"depth":  "100",
		"waste":  "0",
		"yield":  "0.02",
	}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, _ := r.Value("Slab volume"); got != "0.600 m³" {
		t.Errorf("Slab volume = %q", got)
	}
	if got, _ := r.Value("Bags"); got != "30" {
		t.Errorf("Bags = %q", got)
	}
}

func TestCeilClean(t *testing.T) {
	tests := map[float64]float64{
		44:                  44,
		44.000000000001:     44,
		44.1:                45,
		0.30000000000000004: 1,
	}
	for input, expected := range tests {
		if got := ceilClean(input); got != expected {
			t.Errorf("ceilClean(%v) = %v, expected %v", input, got, expected)
		}
	}
}
