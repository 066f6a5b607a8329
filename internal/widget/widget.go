// Package widget defines the form calculator abstraction every calculator is
// built from: declared fields, a gather step that reads and validates the
// form, a pure compute step and a present step that builds the result model.
package widget

import (
	"github.com/iwvelando/calc-widgets/pkg/format"
)

// Category groups calculators on the index page.
type Category string

// Calculator categories in display order.
const (
	CategoryFinance      Category = "Finance"
	CategoryMaths        Category = "Maths"
	CategoryDates        Category = "Dates"
	CategoryConversion   Category = "Conversion"
	CategoryConstruction Category = "Construction"
	CategoryEngineering  Category = "Engineering"
	CategoryHealth       Category = "Health"
)

// CategoryOrder lists categories in display order.
var CategoryOrder = []Category{
	CategoryFinance,
	CategoryMaths,
	CategoryDates,
	CategoryConversion,
	CategoryConstruction,
	CategoryEngineering,
	CategoryHealth,
}

// Info describes a calculator for listing and form rendering.
type Info struct {
	Slug        string
	Title       string
	Category    Category
	Description string
	Fields      []Field
}

// Widget is one independent calculator.
type Widget interface {
	Info() Info
	// Evaluate runs the calculator over form. The only error it returns is a
	// *validation.InputError.
	Evaluate(f *format.Formatter, form Form) (Result, error)
}

// Definition is a Widget assembled from three functions. Gather reads and
// validates the form and aborts at the first invalid input; Compute is a pure
// function of the gathered input; Present turns the output into display rows.
type Definition[I, O any] struct {
	Meta    Info
	Gather  func(Form) (I, error)
	Compute func(I) O
	Present func(*format.Formatter, I, O) Result
}

// Info implements Widget.
func (d Definition[I, O]) Info() Info {
	return d.Meta
}

// Evaluate implements Widget.
func (d Definition[I, O]) Evaluate(f *format.Formatter, form Form) (Result, error) {
	if f == nil {
		f = format.Default()
	}
	in, err := d.Gather(form.WithFormatter(f))
	if err != nil {
		return Result{}, err
	}
	out := d.Compute(in)
	return d.Present(f, in, out), nil
}
