// Package conversion converts between units of measurement.
package conversion

import (
	"fmt"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Quantity is a family of mutually convertible units.
type Quantity string

// Supported quantities.
const (
	Length      Quantity = "length"
	Mass        Quantity = "mass"
	Volume      Quantity = "volume"
	Area        Quantity = "area"
	Temperature Quantity = "temperature"
)

// Unit is a unit with its factor to the quantity's base unit. Temperature
// units have no factor and are converted through kelvin.
type Unit struct {
	Symbol string
	Name   string
	Factor float64
}

var units = map[Quantity][]Unit{
	Length: {
		{"mm", "Millimetre", 0.001},
		{"cm", "Centimetre", 0.01},
		{"m", "Metre", 1},
		{"km", "Kilometre", 1000},
		{"in", "Inch", 0.0254},
		{"ft", "Foot", 0.3048},
		{"yd", "Yard", 0.9144},
		{"mi", "Mile", 1609.344},
	},
	Mass: {
		{"mg", "Milligram", 1e-6},
		{"g", "Gram", 0.001},
		{"kg", "Kilogram", 1},
		{"t", "Tonne", 1000},
		{"oz", "Ounce", 0.028349523125},
		{"lb", "Pound", 0.45359237},
	},
	Volume: {
		{"ml", "Millilitre", 0.001},
		{"l", "Litre", 1},
		{"m3", "Cubic metre", 1000},
		{"tsp", "Teaspoon", 0.005},
		{"tbsp", "Tablespoon", 0.015},
		{"cup", "Cup", 0.25},
		{"gal", "US gallon", 3.785411784},
	},
	Area: {
		{"cm2", "Square centimetre", 0.0001},
		{"m2", "Square metre", 1},
		{"ha", "Hectare", 10000},
		{"km2", "Square kilometre", 1e6},
		{"ft2", "Square foot", 0.09290304},
		{"ac", "Acre", 4046.8564224},
	},
	Temperature: {
		{"C", "Celsius", 0},
		{"F", "Fahrenheit", 0},
		{"K", "Kelvin", 0},
	},
}

// Quantities returns the supported quantities in display order.
func Quantities() []Quantity {
	return []Quantity{Length, Mass, Volume, Area, Temperature}
}

// Units returns the units of q.
func Units(q Quantity) []Unit {
	return units[q]
}

func lookup(q Quantity, symbol string) (Unit, bool) {
	for _, u := range units[q] {
		if u.Symbol == symbol {
			return u, true
		}
	}
	return Unit{}, false
}

// ToKelvin converts a temperature in unit symbol to kelvin.
func ToKelvin(v float64, symbol string) float64 {
	switch symbol {
	case "C":
		return v + 273.15
	case "F":
		return (v-32)*5/9 + 273.15
	default:
		return v
	}
}

// FromKelvin converts kelvin to the temperature unit symbol.
func FromKelvin(k float64, symbol string) float64 {
	switch symbol {
	case "C":
		return k - 273.15
	case "F":
		return (k-273.15)*9/5 + 32
	default:
		return k
	}
}

// Convert converts v between two units of q.
func Convert(q Quantity, v float64, from, to Unit) float64 {
	if q == Temperature {
		return FromKelvin(ToKelvin(v, from.Symbol), to.Symbol)
	}
	return v * from.Factor / to.Factor
}

type convertInput struct {
	quantity Quantity
	value    float64
	from     Unit
	to       Unit
}

// All returns every conversion calculator.
func All() []widget.Widget {
	return []widget.Widget{UnitConverter()}
}

// UnitConverter converts a value between units of one quantity. From and to
// units are submitted as "quantity:symbol" so one form covers every quantity.
func UnitConverter() widget.Widget {
	return widget.Definition[convertInput, float64]{
		Meta: widget.Info{
			Slug:        "unit-converter",
			Title:       "Unit Converter",
			Category:    widget.CategoryConversion,
			Description: "Convert length, mass, volume, area and temperature.",
			Fields: []widget.Field{
				widget.Select("quantity", "Measure", quantityOptions()...),
				widget.Number("value", "Value"),
				widget.Select("from", "From", unitOptions()...),
				widget.Select("to", "To", unitOptions()...).WithDefault("length:cm"),
			},
		},
		Gather:  gatherConversion,
		Compute: func(in convertInput) float64 { return Convert(in.quantity, in.value, in.from, in.to) },
		Present: func(f *format.Formatter, in convertInput, out float64) widget.Result {
			var r widget.Result
			r.Headline = "Unit conversion"
			r.Emphasize("Result", fmt.Sprintf("%s %s", f.Decimals(out, 4), in.to.Symbol))
			r.Add("Input", fmt.Sprintf("%s %s", f.Decimals(in.value, 4), in.from.Symbol))
			r.Summary = fmt.Sprintf("%s %s = %s %s",
				f.Decimals(in.value, 4), in.from.Name, f.Decimals(out, 4), in.to.Name)
			return r
		},
	}
}

func gatherConversion(f widget.Form) (convertInput, error) {
	in := convertInput{
		quantity: widget.Choice(f, "quantity", Length, Quantities()...),
		value:    f.Number("value"),
	}
	if err := validation.Finite("value", "Value", in.value); err != nil {
		return in, err
	}

	var ok bool
	if in.from, ok = unitFrom(in.quantity, f.Raw("from")); !ok {
		return in, validation.Invalid("from", "Choose a %s unit to convert from.", in.quantity)
	}
	if in.to, ok = unitFrom(in.quantity, f.Raw("to")); !ok {
		return in, validation.Invalid("to", "Choose a %s unit to convert to.", in.quantity)
	}
	if in.quantity == Temperature && ToKelvin(in.value, in.from.Symbol) < 0 {
		return in, validation.Invalid("value", "Temperature cannot be below absolute zero.")
	}
	if in.quantity != Temperature && in.value < 0 {
		return in, validation.Invalid("value", "Value cannot be negative.")
	}
	return in, nil
}

// unitFrom accepts "quantity:symbol" or a bare symbol.
func unitFrom(q Quantity, raw string) (Unit, bool) {
	prefix := string(q) + ":"
	if len(raw) > len(prefix) && raw[:len(prefix)] == prefix {
		raw = raw[len(prefix):]
	}
	return lookup(q, raw)
}

func quantityOptions() []widget.Option {
	options := make([]widget.Option, 0, len(units))
	for _, q := range Quantities() {
		options = append(options, widget.Option{Value: string(q), Label: titleCase(string(q))})
	}
	return options
}

func unitOptions() []widget.Option {
	var options []widget.Option
	for _, q := range Quantities() {
		for _, u := range units[q] {
			options = append(options, widget.Option{
				Value: string(q) + ":" + u.Symbol,
				Label: fmt.Sprintf("%s: %s (%s)", titleCase(string(q)), u.Name, u.Symbol),
			})
		}
	}
	return options
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
