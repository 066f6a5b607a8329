package validation

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

func TestNumericPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		expectErr bool
	}{
		{"Positive accepts positive", Positive("a", "Amount", 1), false},
		{"Positive rejects zero", Positive("a", "Amount", 0), true},
		{"Positive rejects negative", Positive("a", "Amount", -5), true},
		{"Positive rejects NaN", Positive("a", "Amount", math.NaN()), true},
		{"NonNegative accepts zero", NonNegative("a", "Amount", 0), false},
		{"NonNegative rejects negative", NonNegative("a", "Amount", -0.01), true},
		{"NonNegative rejects infinity", NonNegative("a", "Amount", math.Inf(1)), true},
		{"PercentRange accepts lower bound", PercentRange("r", "Rate", 0, 0, 100), false},
		{"PercentRange accepts upper bound", PercentRange("r", "Rate", 100, 0, 100), false},
		{"PercentRange rejects above", PercentRange("r", "Rate", 100.01, 0, 100), true},
		{"PercentRange rejects below", PercentRange("r", "Rate", -1, 0, 100), true},
		{"Range accepts inside", Range("h", "Hours", 12, 0, 24), false},
		{"Range rejects outside", Range("h", "Hours", 25, 0, 24), true},
		{"Integer accepts whole", Integer("n", "People", 3), false},
		{"Integer rejects fraction", Integer("n", "People", 2.5), true},
		{"AtMost accepts equal", AtMost("o", "too big", 10, 10), false},
		{"AtMost rejects larger", AtMost("o", "too big", 11, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.expectErr {
				t.Errorf("expectErr=%v, got %v", tt.expectErr, tt.err)
			}
		})
	}
}

func TestInputErrorCarriesField(t *testing.T) {
	err := Positive("balance", "Balance", 0)
	inputErr, ok := AsInputError(err)
	if !ok {
		t.Fatalf("expected *InputError, got %T", err)
	}
	if inputErr.Field != "balance" {
		t.Errorf("expected field balance, got %s", inputErr.Field)
	}
	if inputErr.Error() != "Balance must be greater than zero." {
		t.Errorf("unexpected message %q", inputErr.Error())
	}

	wrapped := fmt.Errorf("evaluate: %w", err)
	if _, ok := AsInputError(wrapped); !ok {
		t.Error("expected wrapped error to unwrap to *InputError")
	}
	if _, ok := AsInputError(errors.New("boom")); ok {
		t.Error("plain errors are not input errors")
	}
}

func TestNotBefore(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := NotBefore("end", "End date is before start date.", start, start); err != nil {
		t.Errorf("same day should pass, got %v", err)
	}
	if err := NotBefore("end", "End date is before start date.", start, start.AddDate(0, 0, -1)); err == nil {
		t.Error("expected error when end precedes start")
	}
}

func TestFirst(t *testing.T) {
	first := Invalid("a", "first")
	second := Invalid("b", "second")

	if err := First(nil, first, second); err != first {
		t.Errorf("expected first failure, got %v", err)
	}
	if err := First(nil, nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
