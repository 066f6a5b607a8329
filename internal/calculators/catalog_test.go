package calculators

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(fixedClock)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if reg.Len() != 35 {
		t.Errorf("expected 35 calculators, got %d", reg.Len())
	}
	if len(reg.Categories()) != len(widget.CategoryOrder) {
		t.Errorf("expected every category to be populated, got %d groups", len(reg.Categories()))
	}

	for _, slug := range []string{"ebitda", "square-root", "business-days", "credit-card-payoff", "unit-converter"} {
		if _, ok := reg.Get(slug); !ok {
			t.Errorf("missing calculator %s", slug)
		}
	}
}

func TestEveryCalculatorDeclaresFields(t *testing.T) {
	reg, err := NewRegistry(fixedClock)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	for _, w := range reg.All() {
		info := w.Info()
		if info.Title == "" || info.Description == "" || len(info.Fields) == 0 {
			t.Errorf("%s: incomplete metadata %+v", info.Slug, info)
		}
		seen := map[string]bool{}
		for _, f := range info.Fields {
			if seen[f.Name] {
				t.Errorf("%s: duplicate field %s", info.Slug, f.Name)
			}
			seen[f.Name] = true
		}
	}
}

// An empty submission must be rejected with an input error or produce a
// result; it must never panic.
func TestEmptySubmissionNeverPanics(t *testing.T) {
	reg, err := NewRegistry(fixedClock)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	for _, w := range reg.All() {
		t.Run(w.Info().Slug, func(t *testing.T) {
			_, err := w.Evaluate(nil, widget.NewForm(url.Values{}))
			if err != nil {
				if _, ok := validation.AsInputError(err); !ok {
					t.Errorf("expected input error, got %T: %v", err, err)
				}
			}
		})
	}
}

func TestEvaluationIsDeterministic(t *testing.T) {
	reg, err := NewRegistry(fixedClock)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	fm := format.New("en", "R")
	w, _ := reg.Get("loan-repayment")
	form := widget.FormOf(map[string]string{"amount": "150000", "rate": "9.5", "years": "5"})

	first, err := w.Evaluate(fm, form)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	second, _ := w.Evaluate(fm, form)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different results")
	}
}

func TestPositiveFieldsRejectZeroAndNegative(t *testing.T) {
	reg, err := NewRegistry(fixedClock)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		slug   string
		valid  map[string]string
		fields []string
	}{
		{"tiles", map[string]string{"area": "10", "length": "30", "width": "30"}, []string{"area", "length", "width"}},
		{"concrete", map[string]string{"length": "3", "width": "2", "depth": "100"}, []string{"length", "width", "depth", "yield"}},
		{"electricity-cost", map[string]string{"watts": "100", "hours": "5", "tariff": "2.5"}, []string{"watts", "days"}},
		{"heat-energy", map[string]string{"mass": "1", "deltaT": "10"}, []string{"mass", "c"}},
		{"bmi", map[string]string{"weight": "70", "height": "175"}, []string{"weight", "height"}},
		{"bmr", map[string]string{"sex": "male", "age": "30", "weight": "70", "height": "175"}, []string{"age", "weight", "height"}},
		{"water-intake", map[string]string{"weight": "70"}, []string{"weight"}},
	}

	for _, tt := range tests {
		w, ok := reg.Get(tt.slug)
		if !ok {
			t.Fatalf("missing calculator %s", tt.slug)
		}
		if _, err := w.Evaluate(nil, widget.FormOf(tt.valid)); err != nil {
			t.Fatalf("%s: valid input rejected: %v", tt.slug, err)
		}
		for _, field := range tt.fields {
			for _, bad := range []string{"0", "-5"} {
				t.Run(tt.slug+"/"+field+"="+bad, func(t *testing.T) {
					values := map[string]string{field: bad}
					for k, v := range tt.valid {
						if k != field {
							values[k] = v
						}
					}
					_, err := w.Evaluate(nil, widget.FormOf(values))
					inputErr, ok := validation.AsInputError(err)
					if !ok {
						t.Fatalf("expected input error, got %v", err)
					}
					if inputErr.Field != field {
						t.Errorf("error on %s (%s), expected %s", inputErr.Field, inputErr.Message, field)
					}
				})
			}
		}
	}
}
