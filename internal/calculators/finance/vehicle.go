package finance

import (
	"fmt"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/loans"
	"github.com/iwvelando/calc-widgets/pkg/mathutil"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

const (
	defaultCarTermMonths = 72
	defaultBondRate      = 11.75
	defaultBondYears     = 20
	bondIncomeShare      = 30.0
)

type carInput struct {
	price    float64
	deposit  float64
	rate     float64
	months   int
	balloon  float64
	financed float64
}

type carOutput struct {
	instalment    float64
	totalPaid     float64
	totalInterest float64
}

// CarFinance prices vehicle finance with an optional deposit and balloon.
func CarFinance() widget.Widget {
	return widget.Definition[carInput, carOutput]{
		Meta: widget.Info{
			Slug:        "car-finance",
			Title:       "Car Finance Calculator",
			Category:    widget.CategoryFinance,
			Description: "Monthly instalment on vehicle finance with deposit and balloon payment.",
			Fields: []widget.Field{
				widget.Money("price", "Vehicle price"),
				widget.Money("deposit", "Deposit").AsOptional(),
				widget.Number("rate", "Interest rate").WithUnit("% p.a."),
				widget.Number("months", "Term").WithUnit("months").AsOptional().WithDefault("72"),
				widget.Number("balloon", "Balloon payment").WithUnit("% of price").AsOptional(),
			},
		},
		Gather: func(f widget.Form) (carInput, error) {
			in := carInput{
				price:   f.Number("price"),
				deposit: f.Optional("deposit", 0),
				rate:    f.Number("rate"),
			}
			months := f.Optional("months", defaultCarTermMonths)
			balloonPct := f.Optional("balloon", 0)
			err := validation.First(
				validation.Positive("price", "Vehicle price", in.price),
				validation.NonNegative("deposit", "Deposit", in.deposit),
				validation.PercentRange("rate", "Interest rate", in.rate, 0, 100),
				validation.Positive("months", "Term", months),
				validation.Integer("months", "Term", months),
				validation.Range("months", "Term", months, 1, 120),
				validation.PercentRange("balloon", "Balloon payment", balloonPct, 0, 100),
			)
			if err != nil {
				return in, err
			}
			if in.deposit >= in.price {
				return in, validation.Invalid("deposit", "Deposit must be less than the vehicle price.")
			}
			in.months = int(months)
			in.financed = in.price - in.deposit
			in.balloon = mathutil.ApplyPercentage(in.price, balloonPct)
			return in, validation.AtMost("balloon", "Balloon payment cannot exceed the amount financed.", in.balloon, in.financed)
		},
		Compute: func(in carInput) carOutput {
			instalment := loans.CalculateBalloonPayment(in.financed, in.balloon, in.rate, in.months)
			total := instalment*float64(in.months) + in.balloon
			return carOutput{
				instalment:    instalment,
				totalPaid:     total,
				totalInterest: total - in.financed,
			}
		},
		Present: func(f *format.Formatter, in carInput, out carOutput) widget.Result {
			var r widget.Result
			r.Headline = "Car finance"
			r.Emphasize("Monthly instalment", f.Currency(out.instalment))
			r.Add("Amount financed", f.Currency(in.financed))
			if in.balloon > 0 {
				r.Add("Balloon payment", f.Currency(in.balloon))
			}
			r.Add("Total repaid", f.Currency(out.totalPaid))
			r.Add("Total interest", f.Currency(out.totalInterest))
			r.Summary = fmt.Sprintf("Financing %s over %d months costs %s a month.",
				f.Currency(in.financed), in.months, f.Currency(out.instalment))
			return r
		},
	}
}

type bondInput struct {
	income   float64
	expenses float64
	deposit  float64
	rate     float64
	months   int
}

type bondOutput struct {
	instalment float64
	maxLoan    float64
	maxPrice   float64
	totalPaid  float64
}

// BondAffordability estimates the largest home loan an income supports.
// The instalment is capped at a share of gross income and by what is left
// after expenses.
func BondAffordability() widget.Widget {
	return widget.Definition[bondInput, bondOutput]{
		Meta: widget.Info{
			Slug:        "bond-affordability",
			Title:       "Bond Affordability Calculator",
			Category:    widget.CategoryFinance,
			Description: "How much home loan your income can support.",
			Fields: []widget.Field{
				widget.Money("income", "Gross monthly income"),
				widget.Money("expenses", "Monthly expenses").AsOptional(),
				widget.Number("rate", "Interest rate").WithUnit("% p.a.").AsOptional().
					WithDefault(format.Fixed(defaultBondRate, 2)),
				widget.Number("years", "Loan term").WithUnit("years").AsOptional().WithDefault("20"),
				widget.Money("deposit", "Deposit").AsOptional(),
			},
		},
		Gather: func(f widget.Form) (bondInput, error) {
			in := bondInput{
				income:   f.Number("income"),
				expenses: f.Optional("expenses", 0),
				deposit:  f.Optional("deposit", 0),
				rate:     f.Optional("rate", defaultBondRate),
			}
			years := f.Optional("years", defaultBondYears)
			err := validation.First(
				validation.Positive("income", "Gross monthly income", in.income),
				validation.NonNegative("expenses", "Monthly expenses", in.expenses),
				validation.NonNegative("deposit", "Deposit", in.deposit),
				validation.PercentRange("rate", "Interest rate", in.rate, 0, 100),
				validation.Positive("years", "Loan term", years),
				validation.Integer("years", "Loan term", years),
				validation.Range("years", "Loan term", years, 1, 40),
			)
			if err != nil {
				return in, err
			}
			if in.expenses >= in.income {
				return in, validation.Invalid("expenses", "Monthly expenses must be less than income.")
			}
			in.months = int(years) * constants.MonthsPerYear
			return in, nil
		},
		Compute: func(in bondInput) bondOutput {
			instalment := mathutil.ApplyPercentage(in.income, bondIncomeShare)
			if spare := in.income - in.expenses; spare < instalment {
				instalment = spare
			}
			maxLoan := loans.PresentValue(instalment, in.rate, in.months)
			return bondOutput{
				instalment: instalment,
				maxLoan:    maxLoan,
				maxPrice:   maxLoan + in.deposit,
				totalPaid:  instalment * float64(in.months),
			}
		},
		Present: func(f *format.Formatter, in bondInput, out bondOutput) widget.Result {
			var r widget.Result
			r.Headline = "Bond affordability"
			r.Emphasize("Maximum loan", f.Currency(out.maxLoan))
			r.Add("Maximum purchase price", f.Currency(out.maxPrice))
			r.Add("Affordable instalment", f.Currency(out.instalment))
			r.Add("Total repaid", f.Currency(out.totalPaid))
			r.Note(fmt.Sprintf("Instalment is capped at %s of gross income.", f.Percent(bondIncomeShare)))
			r.Summary = fmt.Sprintf("An income of %s supports a bond of about %s.",
				f.Currency(in.income), f.Currency(out.maxLoan))
			return r
		},
	}
}
