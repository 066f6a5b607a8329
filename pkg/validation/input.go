package validation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// InputError is the single error kind a calculator reports: the user supplied
// a value it cannot work with. Field names the offending form field, when
// there is one, so the UI can point at it.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Invalid builds an InputError for field with a formatted message.
func Invalid(field, format string, args ...interface{}) *InputError {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsInputError unwraps err into an *InputError.
func AsInputError(err error) (*InputError, bool) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr, true
	}
	return nil, false
}

// Finite rejects NaN and infinities.
func Finite(field, label string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(field, "Please enter a valid number for %s.", label)
	}
	return nil
}

// Positive requires v > 0.
func Positive(field, label string, v float64) error {
	if err := Finite(field, label, v); err != nil {
		return err
	}
	if v <= 0 {
		return Invalid(field, "%s must be greater than zero.", label)
	}
	return nil
}

// NonNegative requires v >= 0.
func NonNegative(field, label string, v float64) error {
	if err := Finite(field, label, v); err != nil {
		return err
	}
	if v < 0 {
		return Invalid(field, "%s cannot be negative.", label)
	}
	return nil
}

// PercentRange requires min <= v <= max.
func PercentRange(field, label string, v, min, max float64) error {
	if err := Finite(field, label, v); err != nil {
		return err
	}
	if v < min || v > max {
		return Invalid(field, "%s must be between %g%% and %g%%.", label, min, max)
	}
	return nil
}

// Range requires min <= v <= max.
func Range(field, label string, v, min, max float64) error {
	if err := Finite(field, label, v); err != nil {
		return err
	}
	if v < min || v > max {
		return Invalid(field, "%s must be between %g and %g.", label, min, max)
	}
	return nil
}

// Integer requires v to be a whole number.
func Integer(field, label string, v float64) error {
	if err := Finite(field, label, v); err != nil {
		return err
	}
	if v != math.Trunc(v) {
		return Invalid(field, "%s must be a whole number.", label)
	}
	return nil
}

// AtMost requires part <= whole, e.g. openings cannot exceed the wall area.
func AtMost(field, message string, part, whole float64) error {
	if part > whole {
		return Invalid(field, "%s", message)
	}
	return nil
}

// NotBefore requires end to be on or after start.
func NotBefore(field, message string, start, end time.Time) error {
	if end.Before(start) {
		return Invalid(field, "%s", message)
	}
	return nil
}

// First returns the first non-nil error, so a calculator can list its checks
// in order and abort at the first failure.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
