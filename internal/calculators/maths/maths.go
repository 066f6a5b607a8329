// Package maths holds general-purpose arithmetic calculators.
package maths

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/mathutil"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

// All returns every maths calculator.
func All() []widget.Widget {
	return []widget.Widget{SquareRoot(), Percentage(), Statistics()}
}

// maxExactRadicand bounds the integers for which a simplified radical is
// shown; larger values only get the decimal root.
const maxExactRadicand = 1e12

type rootOutput struct {
	root    float64
	perfect bool
	exact   string
}

// SquareRoot shows the decimal root and, for integers, the exact form.
func SquareRoot() widget.Widget {
	return widget.Definition[float64, rootOutput]{
		Meta: widget.Info{
			Slug:        "square-root",
			Title:       "Square Root Calculator",
			Category:    widget.CategoryMaths,
			Description: "Square root with perfect-square check and simplified radical form.",
			Fields:      []widget.Field{widget.Number("number", "Number")},
		},
		Gather: func(f widget.Form) (float64, error) {
			n := f.Number("number")
			return n, validation.NonNegative("number", "Number", n)
		},
		Compute: computeRoot,
		Present: func(_ *format.Formatter, n float64, out rootOutput) widget.Result {
			var r widget.Result
			r.Headline = "Square root"
			r.Emphasize("Square root", format.Fixed(out.root, 2))
			r.Add("Perfect square", format.YesNo(out.perfect))
			r.Add("Exact result", out.exact)
			r.Summary = fmt.Sprintf("√%s = %s", format.Fixed(n, decimalsOf(n)), format.Fixed(out.root, 2))
			return r
		},
	}
}

func computeRoot(n float64) rootOutput {
	out := rootOutput{root: math.Sqrt(n), perfect: mathutil.IsPerfectSquare(n)}
	switch {
	case out.perfect:
		out.exact = fmt.Sprintf("%d", int64(math.Round(out.root)))
	case n == math.Trunc(n) && n <= maxExactRadicand:
		coef, radicand := mathutil.SimplifyRadical(int64(n))
		if coef == 1 {
			out.exact = fmt.Sprintf("√%d", radicand)
		} else {
			out.exact = fmt.Sprintf("%d√%d", coef, radicand)
		}
	default:
		out.exact = "≈ " + format.Fixed(out.root, 6)
	}
	return out
}

// decimalsOf returns how many fraction digits are needed to echo v back.
func decimalsOf(v float64) int {
	s := fmt.Sprintf("%g", v)
	if i := strings.IndexByte(s, '.'); i >= 0 && !strings.ContainsAny(s, "eE") {
		return len(s) - i - 1
	}
	return 0
}

// PercentageMode selects the percentage question being asked.
type PercentageMode string

// Percentage modes.
const (
	PercentOf     PercentageMode = "of"
	PercentIsWhat PercentageMode = "is-what"
	PercentChange PercentageMode = "change"
)

type percentInput struct {
	mode PercentageMode
	x    float64
	y    float64
}

// Percentage answers "x% of y", "x is what % of y" and "change from x to y".
func Percentage() widget.Widget {
	return widget.Definition[percentInput, float64]{
		Meta: widget.Info{
			Slug:        "percentage",
			Title:       "Percentage Calculator",
			Category:    widget.CategoryMaths,
			Description: "Percent of a value, percent one value is of another, and percentage change.",
			Fields: []widget.Field{
				widget.Select("mode", "Question",
					widget.Option{Value: string(PercentOf), Label: "What is X% of Y?"},
					widget.Option{Value: string(PercentIsWhat), Label: "X is what % of Y?"},
					widget.Option{Value: string(PercentChange), Label: "% change from X to Y"},
				),
				widget.Number("x", "X"),
				widget.Number("y", "Y"),
			},
		},
		Gather: func(f widget.Form) (percentInput, error) {
			in := percentInput{
				mode: widget.Choice(f, "mode", PercentOf, PercentOf, PercentIsWhat, PercentChange),
				x:    f.Number("x"),
				y:    f.Number("y"),
			}
			err := validation.First(
				validation.Finite("x", "X", in.x),
				validation.Finite("y", "Y", in.y),
			)
			if err != nil {
				return in, err
			}
			switch {
			case in.mode == PercentIsWhat && in.y == 0:
				return in, validation.Invalid("y", "Y cannot be zero.")
			case in.mode == PercentChange && in.x == 0:
				return in, validation.Invalid("x", "X cannot be zero when calculating change.")
			}
			return in, nil
		},
		Compute: func(in percentInput) float64 {
			switch in.mode {
			case PercentIsWhat:
				return mathutil.CalculatePercentage(in.x, in.y)
			case PercentChange:
				return mathutil.PercentChange(in.x, in.y)
			default:
				return mathutil.ApplyPercentage(in.y, in.x)
			}
		},
		Present: func(f *format.Formatter, in percentInput, v float64) widget.Result {
			var r widget.Result
			r.Headline = "Percentage"
			switch in.mode {
			case PercentIsWhat:
				r.Emphasize("Result", f.Percent(v))
				r.Summary = fmt.Sprintf("%s is %s of %s.", f.TwoDecimals(in.x), f.Percent(v), f.TwoDecimals(in.y))
			case PercentChange:
				r.Emphasize("Result", f.Percent(v))
				if v >= 0 {
					r.Add("Direction", "Increase")
				} else {
					r.Add("Direction", "Decrease")
				}
				r.Summary = fmt.Sprintf("Change from %s to %s: %s.", f.TwoDecimals(in.x), f.TwoDecimals(in.y), f.Percent(v))
			default:
				r.Emphasize("Result", f.TwoDecimals(v))
				r.Summary = fmt.Sprintf("%s of %s is %s.", f.Percent(in.x), f.TwoDecimals(in.y), f.TwoDecimals(v))
			}
			return r
		},
	}
}

type statsOutput struct {
	count  int
	sum    float64
	mean   float64
	median float64
	modes  []float64
	min    float64
	max    float64
	stdDev float64
}

// Statistics summarises a list of numbers.
func Statistics() widget.Widget {
	return widget.Definition[[]float64, statsOutput]{
		Meta: widget.Info{
			Slug:        "statistics",
			Title:       "Statistics Calculator",
			Category:    widget.CategoryMaths,
			Description: "Mean, median, mode, range and standard deviation of a list of numbers.",
			Fields: []widget.Field{
				widget.List("values", "Numbers").WithHint("One per line, or separated by commas or semicolons."),
			},
		},
		Gather: func(f widget.Form) ([]float64, error) {
			values, err := f.Numbers("values", "Numbers")
			if err != nil {
				return nil, err
			}
			if len(values) == 0 {
				return nil, validation.Invalid("values", "Enter at least one number.")
			}
			return values, nil
		},
		Compute: func(values []float64) statsOutput {
			lo, hi := mathutil.MinMax(values)
			return statsOutput{
				count:  len(values),
				sum:    mathutil.Sum(values),
				mean:   mathutil.Mean(values),
				median: mathutil.Median(values),
				modes:  mathutil.Modes(values),
				min:    lo,
				max:    hi,
				stdDev: mathutil.PopulationStdDev(values),
			}
		},
		Present: func(f *format.Formatter, _ []float64, out statsOutput) widget.Result {
			var r widget.Result
			r.Headline = "Statistics"
			r.Add("Count", fmt.Sprintf("%d", out.count))
			r.Add("Sum", f.TwoDecimals(out.sum))
			r.Emphasize("Mean", f.TwoDecimals(out.mean))
			r.Add("Median", f.TwoDecimals(out.median))
			if len(out.modes) == 0 {
				r.Add("Mode", "None")
			} else {
				modes := make([]string, len(out.modes))
				for i, m := range out.modes {
					modes[i] = f.TwoDecimals(m)
				}
				r.Add("Mode", strings.Join(modes, "; "))
			}
			r.Add("Minimum", f.TwoDecimals(out.min))
			r.Add("Maximum", f.TwoDecimals(out.max))
			r.Add("Range", f.TwoDecimals(out.max-out.min))
			r.Add("Standard deviation", f.TwoDecimals(out.stdDev))
			r.Summary = fmt.Sprintf("Mean of %s: %s", format.Plural(out.count, "value", "values"), f.TwoDecimals(out.mean))
			return r
		},
	}
}
