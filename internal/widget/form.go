package widget

import (
	"net/url"
	"strings"
	"time"

	"github.com/iwvelando/calc-widgets/pkg/datetime"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

// Form is the submitted state of a calculator's inputs. Reads are fail-soft
// unless a method says otherwise.
type Form struct {
	values url.Values
	// numbers reads numeric input in the display locale; nil reads "." as
	// the decimal point.
	numbers *format.Formatter
}

// NewForm wraps submitted form values.
func NewForm(values url.Values) Form {
	if values == nil {
		values = url.Values{}
	}
	return Form{values: values}
}

// FormOf builds a Form from name/value pairs, mostly for tests and the CLI.
func FormOf(pairs map[string]string) Form {
	values := url.Values{}
	for k, v := range pairs {
		values.Set(k, v)
	}
	return NewForm(values)
}

// WithFormatter returns a copy of f that reads numbers the way fm renders
// them, e.g. "1 000,50" as 1000.5 for en-ZA.
func (f Form) WithFormatter(fm *format.Formatter) Form {
	f.numbers = fm
	return f
}

// Raw returns the trimmed value of name.
func (f Form) Raw(name string) string {
	return strings.TrimSpace(f.values.Get(name))
}

// Present reports whether name was submitted with a non-blank value.
func (f Form) Present(name string) bool {
	return f.Raw(name) != ""
}

// Number coerces name to a number; blank or invalid input reads as 0.
func (f Form) Number(name string) float64 {
	return f.numbers.ToNumber(f.Raw(name))
}

// Optional returns def when name is blank, otherwise the coerced number.
func (f Form) Optional(name string, def float64) float64 {
	if !f.Present(name) {
		return def
	}
	return f.Number(name)
}

// Bool reads a checkbox. Rendered checkboxes are preceded by a hidden "off"
// input, so the last submitted value wins.
func (f Form) Bool(name string) bool {
	return f.BoolDefault(name, false)
}

// BoolDefault reads a checkbox, returning def when name was not submitted at
// all (API and CLI callers that omit it).
func (f Form) BoolDefault(name string, def bool) bool {
	submitted, ok := f.values[name]
	if !ok || len(submitted) == 0 {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(submitted[len(submitted)-1])) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Choice returns the submitted value of name if it is one of allowed, else def.
func Choice[M ~string](f Form, name string, def M, allowed ...M) M {
	raw := M(f.Raw(name))
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	return def
}

// Date parses name as YYYY-MM-DD. Dates are required; a blank or malformed
// value is an input error.
func (f Form) Date(name, label string) (time.Time, error) {
	raw := f.Raw(name)
	if raw == "" {
		return time.Time{}, validation.Invalid(name, "Please select a %s.", strings.ToLower(label))
	}
	t, err := datetime.ParseDate(raw)
	if err != nil {
		return time.Time{}, validation.Invalid(name, "%s is not a valid date.", label)
	}
	return t, nil
}

// DateOr parses name like Date but returns def when name is blank.
func (f Form) DateOr(name, label string, def time.Time) (time.Time, error) {
	if !f.Present(name) {
		return datetime.Day(def), nil
	}
	return f.Date(name, label)
}

// Tokens splits a list field on newlines, semicolons and commas. Commas in
// list fields are separators, so list entries cannot use comma grouping or a
// comma decimal point.
func (f Form) Tokens(name string) []string {
	raw := f.values.Get(name)
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ';' || r == ','
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if t := strings.TrimSpace(field); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Numbers parses a list field into numbers. Entries that are not numbers are
// an input error rather than silently becoming 0.
func (f Form) Numbers(name, label string) ([]float64, error) {
	tokens := f.Tokens(name)
	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		if !looksNumeric(tok) {
			return nil, validation.Invalid(name, "%q in %s is not a number.", tok, label)
		}
		values = append(values, f.numbers.ToNumber(tok))
	}
	return values, nil
}

// Dates parses a list field into dates.
func (f Form) Dates(name, label string) ([]time.Time, error) {
	tokens := f.Tokens(name)
	dates := make([]time.Time, 0, len(tokens))
	for _, tok := range tokens {
		t, err := datetime.ParseDate(tok)
		if err != nil {
			return nil, validation.Invalid(name, "%q in %s is not a valid date (use YYYY-MM-DD).", tok, label)
		}
		dates = append(dates, t)
	}
	return dates, nil
}

// Encode returns a canonical encoding with keys sorted, suitable as a cache key.
func (f Form) Encode() string {
	return f.values.Encode()
}

// Values returns a copy of the underlying values.
func (f Form) Values() url.Values {
	out := make(url.Values, len(f.values))
	for k, v := range f.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func looksNumeric(tok string) bool {
	trimmed := strings.TrimLeft(strings.TrimSpace(tok), "+-R$€£ ")
	if trimmed == "" {
		return false
	}
	c := trimmed[0]
	return (c >= '0' && c <= '9') || c == '.'
}
