package format

import (
	"math"
	"strconv"
	"strings"
)

// currencySymbols may lead a pasted amount and are ignored by ToNumber.
const currencySymbols = "R$€£"

// ToNumber coerces raw form input into a number. It is fail-soft: anything
// that does not parse to a finite float yields 0, so a blank optional field
// reads as zero.
//
// Grouping characters inserted by live input formatting are dropped first and
// then, like a browser parseFloat, the longest numeric prefix is parsed.
func ToNumber(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', ',', '\t':
			return -1
		}
		return r
	}, raw)
	cleaned = strings.TrimLeft(cleaned, currencySymbols)

	prefix := numericPrefix(cleaned)
	if prefix == "" {
		return 0
	}
	value, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// ToNumber coerces raw form input the way f renders numbers, so that a value
// produced by TwoDecimals reads back unchanged. For locales with a comma
// decimal separator a comma is taken as the decimal point and dots as
// grouping; input that has no comma keeps "." as the decimal point, which is
// what share links, the API and the CLI send. A nil formatter coerces like the
// package-level ToNumber.
func (f *Formatter) ToNumber(raw string) float64 {
	if f == nil || f.decimal == "." {
		return ToNumber(raw)
	}
	s := raw
	if f.group != "" && f.group != f.decimal {
		s = strings.ReplaceAll(s, f.group, "")
	}
	if strings.Contains(s, f.decimal) {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, f.decimal, ".", 1)
	}
	return ToNumber(s)
}

// numericPrefix returns the longest prefix of s that forms a decimal number
// with optional sign, fraction and exponent, or "" when s has no leading digits.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
			digits++
		}
		i = j
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}
	return s[:end]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
