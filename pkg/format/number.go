// Package format provides the shared numeric utilities used by every
// calculator: fail-soft coercion of form input and locale-aware display
// formatting.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers for one locale and currency symbol. It is safe for
// concurrent use.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	symbol  string
	decimal string
	group   string
}

var defaultFormatter = New(constants.DefaultLocale, constants.DefaultCurrencySymbol)

// New returns a Formatter for the BCP 47 locale and currency symbol. An
// unparseable locale falls back to English.
func New(locale, symbol string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	printer := message.NewPrinter(tag)
	decimal, group := separators(printer)
	return &Formatter{
		tag:     tag,
		printer: printer,
		symbol:  strings.TrimSpace(symbol),
		decimal: decimal,
		group:   group,
	}
}

// separators reads the decimal and grouping symbols back out of a sample
// rendering. Locales with non-Latin digits fall back to "." and ",".
func separators(printer *message.Printer) (decimal, group string) {
	sample := printer.Sprintf("%.1f", 1234.5)
	two := strings.Index(sample, "2")
	four := strings.LastIndex(sample, "4")
	if !strings.HasPrefix(sample, "1") || !strings.HasSuffix(sample, "5") || two < 1 || four < two {
		return ".", ","
	}
	decimal = sample[four+1 : len(sample)-1]
	group = sample[1:two]
	if decimal == "" {
		decimal = "."
	}
	return decimal, group
}

// Default returns the process-wide formatter (en-ZA, rand).
func Default() *Formatter {
	return defaultFormatter
}

// Locale returns the language tag the formatter groups digits for.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Symbol returns the currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// DecimalSeparator returns the symbol the locale writes before fractions.
func (f *Formatter) DecimalSeparator() string {
	return f.decimal
}

// GroupSeparator returns the symbol the locale groups thousands with. It is
// empty for locales that do not group.
func (f *Formatter) GroupSeparator() string {
	return f.group
}

// TwoDecimals renders v with grouping separators and exactly two decimal
// places. NaN and infinities render as zero instead of failing.
func (f *Formatter) TwoDecimals(v float64) string {
	return f.Decimals(v, 2)
}

// Decimals renders v with grouping separators and the given number of
// decimal places.
func (f *Formatter) Decimals(v float64, places int) string {
	if places < 0 {
		places = 0
	}
	rounded := roundHalfAway(v, places)
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", places), rounded)
}

// Integer renders v rounded to a whole number with grouping separators.
func (f *Formatter) Integer(v float64) string {
	return f.Decimals(v, 0)
}

// Currency prefixes the two-decimal rendering of |v| with the currency
// symbol, e.g. "R 1,234.56" or "-R 1,234.56".
func (f *Formatter) Currency(v float64) string {
	rounded := roundHalfAway(v, 2)
	body := f.TwoDecimals(math.Abs(rounded))
	if f.symbol != "" {
		body = f.symbol + " " + body
	}
	if rounded < 0 {
		return "-" + body
	}
	return body
}

// Percent renders v with two decimals and a percent sign.
func (f *Formatter) Percent(v float64) string {
	return f.TwoDecimals(v) + "%"
}

// FormatTwoDecimals renders v with the default formatter.
func FormatTwoDecimals(v float64) string {
	return defaultFormatter.TwoDecimals(v)
}

// FormatCurrency renders v as currency with the default formatter.
func FormatCurrency(v float64) string {
	return defaultFormatter.Currency(v)
}

// Fixed renders v with exactly places decimals and no grouping, in the manner
// of a JavaScript toFixed. Non-finite values render as zero.
func Fixed(v float64, places int) string {
	if places < 0 {
		places = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(int32(places))
}

// roundHalfAway rounds on the decimal representation so 1.005 becomes 1.01,
// and normalises negative zero.
func roundHalfAway(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(v).Round(int32(places)).Float64()
	if rounded == 0 {
		return 0
	}
	return rounded
}
