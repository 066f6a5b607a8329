package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/mathutil"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

// Compounding is how often interest is added to the balance.
type Compounding string

// Compounding frequencies.
const (
	CompoundAnnually     Compounding = "annually"
	CompoundSemiAnnually Compounding = "semi-annually"
	CompoundQuarterly    Compounding = "quarterly"
	CompoundMonthly      Compounding = "monthly"
	CompoundDaily        Compounding = "daily"
)

// PeriodsPerYear returns the number of compounding periods in a year.
func (c Compounding) PeriodsPerYear() float64 {
	switch c {
	case CompoundAnnually:
		return 1
	case CompoundSemiAnnually:
		return 2
	case CompoundQuarterly:
		return 4
	case CompoundDaily:
		return constants.DaysPerYear
	default:
		return constants.MonthsPerYear
	}
}

type compoundInput struct {
	principal    float64
	rate         float64
	years        float64
	compounding  Compounding
	contribution float64
}

type compoundOutput struct {
	futureValue   float64
	contributions float64
	interest      float64
}

// CompoundInterest grows a lump sum plus optional month-end contributions.
func CompoundInterest() widget.Widget {
	return widget.Definition[compoundInput, compoundOutput]{
		Meta: widget.Info{
			Slug:        "compound-interest",
			Title:       "Compound Interest Calculator",
			Category:    widget.CategoryFinance,
			Description: "Future value of an investment with compounding and monthly contributions.",
			Fields: []widget.Field{
				widget.Money("principal", "Initial investment"),
				widget.Number("rate", "Annual interest rate").WithUnit("%"),
				widget.Number("years", "Investment period").WithUnit("years"),
				widget.Select("compounding", "Compounding",
					widget.Option{Value: string(CompoundMonthly), Label: "Monthly"},
					widget.Option{Value: string(CompoundAnnually), Label: "Annually"},
					widget.Option{Value: string(CompoundSemiAnnually), Label: "Semi-annually"},
					widget.Option{Value: string(CompoundQuarterly), Label: "Quarterly"},
					widget.Option{Value: string(CompoundDaily), Label: "Daily"},
				),
				widget.Money("contribution", "Monthly contribution").AsOptional().WithHint("Defaults to 0."),
			},
		},
		Gather: func(f widget.Form) (compoundInput, error) {
			in := compoundInput{
				principal: f.Number("principal"),
				rate:      f.Number("rate"),
				years:     f.Number("years"),
				compounding: widget.Choice(f, "compounding", CompoundMonthly,
					CompoundAnnually, CompoundSemiAnnually, CompoundQuarterly, CompoundMonthly, CompoundDaily),
				contribution: f.Optional("contribution", 0),
			}
			return in, validation.First(
				validation.NonNegative("principal", "Initial investment", in.principal),
				validation.PercentRange("rate", "Interest rate", in.rate, 0, 100),
				validation.Positive("years", "Investment period", in.years),
				validation.Range("years", "Investment period", in.years, 0, 100),
				validation.NonNegative("contribution", "Monthly contribution", in.contribution),
			)
		},
		Compute: computeCompound,
		Present: func(f *format.Formatter, in compoundInput, out compoundOutput) widget.Result {
			var r widget.Result
			r.Headline = "Compound interest"
			r.Emphasize("Future value", f.Currency(out.futureValue))
			r.Add("Total contributions", f.Currency(out.contributions))
			r.Add("Interest earned", f.Currency(out.interest))
			r.Summary = fmt.Sprintf("%s invested at %s%% for %s years grows to %s.",
				f.Currency(in.principal), format.Fixed(in.rate, 2), format.Fixed(in.years, 0), f.Currency(out.futureValue))
			return r
		},
	}
}

func computeCompound(in compoundInput) compoundOutput {
	n := in.compounding.PeriodsPerYear()
	r := in.rate / constants.PercentageMultiplier
	fvPrincipal := in.principal * math.Pow(1+r/n, n*in.years)

	months := math.Round(in.years * constants.MonthsPerYear)
	monthly := math.Pow(1+r/n, n/constants.MonthsPerYear) - 1
	var fvContrib float64
	if monthly == 0 {
		fvContrib = in.contribution * months
	} else {
		fvContrib = in.contribution * (math.Pow(1+monthly, months) - 1) / monthly
	}

	contributions := in.principal + in.contribution*months
	fv := fvPrincipal + fvContrib
	return compoundOutput{
		futureValue:   fv,
		contributions: contributions,
		interest:      fv - contributions,
	}
}

type simpleInput struct {
	principal float64
	rate      float64
	years     float64
}

// SimpleInterest computes non-compounding interest.
func SimpleInterest() widget.Widget {
	return widget.Definition[simpleInput, float64]{
		Meta: widget.Info{
			Slug:        "simple-interest",
			Title:       "Simple Interest Calculator",
			Category:    widget.CategoryFinance,
			Description: "Interest on a principal without compounding.",
			Fields: []widget.Field{
				widget.Money("principal", "Principal"),
				widget.Number("rate", "Annual interest rate").WithUnit("%"),
				widget.Number("years", "Period").WithUnit("years"),
			},
		},
		Gather: func(f widget.Form) (simpleInput, error) {
			in := simpleInput{principal: f.Number("principal"), rate: f.Number("rate"), years: f.Number("years")}
			return in, validation.First(
				validation.Positive("principal", "Principal", in.principal),
				validation.PercentRange("rate", "Interest rate", in.rate, 0, 100),
				validation.Positive("years", "Period", in.years),
			)
		},
		Compute: func(in simpleInput) float64 {
			return mathutil.ApplyPercentage(in.principal, in.rate) * in.years
		},
		Present: func(f *format.Formatter, in simpleInput, interest float64) widget.Result {
			var r widget.Result
			r.Headline = "Simple interest"
			r.Emphasize("Interest", f.Currency(interest))
			r.Add("Total amount", f.Currency(in.principal+interest))
			r.Summary = fmt.Sprintf("Simple interest on %s: %s.", f.Currency(in.principal), f.Currency(interest))
			return r
		},
	}
}

type savingsInput struct {
	target  float64
	current float64
	deposit float64
	rate    float64
}

type savingsOutput struct {
	months    int
	reached   bool
	deposited float64
	interest  float64
	balance   float64
}

// SavingsGoal projects how long monthly deposits take to reach a target.
func SavingsGoal() widget.Widget {
	return widget.Definition[savingsInput, savingsOutput]{
		Meta: widget.Info{
			Slug:        "savings-goal",
			Title:       "Savings Goal Calculator",
			Category:    widget.CategoryFinance,
			Description: "Months of saving needed to reach a target amount.",
			Fields: []widget.Field{
				widget.Money("target", "Savings target"),
				widget.Money("current", "Current savings").AsOptional().WithHint("Defaults to 0."),
				widget.Money("deposit", "Monthly deposit"),
				widget.Number("rate", "Annual interest rate").WithUnit("%").AsOptional().WithHint("Defaults to 0%."),
			},
		},
		Gather: func(f widget.Form) (savingsInput, error) {
			in := savingsInput{
				target:  f.Number("target"),
				current: f.Optional("current", 0),
				deposit: f.Number("deposit"),
				rate:    f.Optional("rate", 0),
			}
			return in, validation.First(
				validation.Positive("target", "Savings target", in.target),
				validation.NonNegative("current", "Current savings", in.current),
				validation.Positive("deposit", "Monthly deposit", in.deposit),
				validation.PercentRange("rate", "Interest rate", in.rate, 0, 100),
			)
		},
		Compute: computeSavings,
		Present: func(f *format.Formatter, in savingsInput, out savingsOutput) widget.Result {
			var r widget.Result
			r.Headline = "Savings goal"
			switch {
			case out.months == 0:
				r.Emphasize("Time to goal", "Already reached")
			case out.reached:
				r.Emphasize("Time to goal", format.Months(out.months))
			default:
				r.Emphasize("Time to goal", "More than "+format.Months(out.months))
				r.Note("The target is not reached within the projection period.")
			}
			r.Add("Total deposited", f.Currency(out.deposited))
			r.Add("Interest earned", f.Currency(out.interest))
			r.Add("Final balance", f.Currency(out.balance))
			r.Summary = fmt.Sprintf("Saving %s a month reaches %s in %s.",
				f.Currency(in.deposit), f.Currency(in.target), format.Months(out.months))
			return r
		},
	}
}

func computeSavings(in savingsInput) savingsOutput {
	out := savingsOutput{balance: in.current, reached: true}
	rate := in.rate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	for out.balance < in.target {
		if out.months >= constants.MaxSimulationMonths {
			out.reached = false
			break
		}
		interest := out.balance * rate
		out.balance += interest + in.deposit
		out.interest += interest
		out.deposited += in.deposit
		out.months++
	}
	return out
}
