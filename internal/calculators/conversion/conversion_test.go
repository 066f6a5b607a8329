package conversion

import (
	"math"
	"testing"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		quantity Quantity
		value    float64
		from     string
		to       string
		expected float64
	}{
		{"Kilometres to metres", Length, 1.5, "km", "m", 1500},
		{"Miles to kilometres", Length, 1, "mi", "km", 1.609344},
		{"Pounds to kilograms", Mass, 10, "lb", "kg", 4.5359237},
		{"Litres to millilitres", Volume, 2, "l", "ml", 2000},
		{"Hectares to square metres", Area, 1, "ha", "m2", 10000},
		{"Boiling point", Temperature, 100, "C", "F", 212},
		{"Freezing point", Temperature, 32, "F", "C", 0},
		{"Absolute zero", Temperature, 0, "K", "C", -273.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, _ := lookup(tt.quantity, tt.from)
			to, _ := lookup(tt.quantity, tt.to)
			if got := Convert(tt.quantity, tt.value, from, to); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Convert() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestUnitConverter(t *testing.T) {
	fm := format.New("en", "")
	r, err := UnitConverter().Evaluate(fm, widget.FormOf(map[string]string{
		"quantity": "length",
		"value":    "2.5",
		"from":     "length:km",
		"to":       "length:m",
	}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, _ := r.Value("Result"); got != "2,500.0000 m" {
		t.Errorf("Result = %q", got)
	}

	tests := []struct {
		name   string
		values map[string]string
		field  string
	}{
		{"Unit from another quantity", map[string]string{"quantity": "mass", "value": "1", "from": "length:km", "to": "mass:kg"}, "from"},
		{"Below absolute zero", map[string]string{"quantity": "temperature", "value": "-300", "from": "C", "to": "F"}, "value"},
		{"Negative length", map[string]string{"quantity": "length", "value": "-1", "from": "m", "to": "cm"}, "value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnitConverter().Evaluate(fm, widget.FormOf(tt.values))
			inputErr, ok := validation.AsInputError(err)
			if !ok || inputErr.Field != tt.field {
				t.Errorf("expected input error on %s, got %v", tt.field, err)
			}
		})
	}

	r, err = UnitConverter().Evaluate(fm, widget.FormOf(map[string]string{
		"quantity": "temperature", "value": "-40", "from": "C", "to": "F",
	}))
	if err != nil {
		t.Fatalf("negative temperatures above absolute zero are valid: %v", err)
	}
	if got, _ := r.Value("Result"); got != "-40.0000 F" {
		t.Errorf("Result = %q", got)
	}
}
