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

const defaultInflationRate = 5.0

type inflationInput struct {
	amount float64
	rate   float64
	years  float64
}

type inflationOutput struct {
	future       float64
	purchasing   float64
	cumulativePc float64
}

// Inflation projects the future cost of today's amount and the future
// purchasing power of today's money.
func Inflation() widget.Widget {
	return widget.Definition[inflationInput, inflationOutput]{
		Meta: widget.Info{
			Slug:        "inflation",
			Title:       "Inflation Calculator",
			Category:    widget.CategoryFinance,
			Description: "What today's money will cost and be worth in the future.",
			Fields: []widget.Field{
				widget.Money("amount", "Amount today"),
				widget.Number("rate", "Inflation rate").WithUnit("% p.a.").AsOptional().
					WithDefault(format.Fixed(defaultInflationRate, 0)),
				widget.Number("years", "Years"),
			},
		},
		Gather: func(f widget.Form) (inflationInput, error) {
			in := inflationInput{
				amount: f.Number("amount"),
				rate:   f.Optional("rate", defaultInflationRate),
				years:  f.Number("years"),
			}
			return in, validation.First(
				validation.Positive("amount", "Amount", in.amount),
				validation.PercentRange("rate", "Inflation rate", in.rate, -50, 100),
				validation.Positive("years", "Years", in.years),
				validation.Range("years", "Years", in.years, 0, 100),
			)
		},
		Compute: func(in inflationInput) inflationOutput {
			factor := math.Pow(1+in.rate/constants.PercentageMultiplier, in.years)
			return inflationOutput{
				future:       in.amount * factor,
				purchasing:   in.amount / factor,
				cumulativePc: (factor - 1) * constants.PercentageMultiplier,
			}
		},
		Present: func(f *format.Formatter, in inflationInput, out inflationOutput) widget.Result {
			var r widget.Result
			r.Headline = "Inflation"
			r.Emphasize("Future cost", f.Currency(out.future))
			r.Add("Purchasing power of today's amount", f.Currency(out.purchasing))
			r.Add("Cumulative inflation", f.Percent(out.cumulativePc))
			r.Summary = fmt.Sprintf("%s today will cost %s in %s years.",
				f.Currency(in.amount), f.Currency(out.future), format.Fixed(in.years, 0))
			return r
		},
	}
}

type discountInput struct {
	price   float64
	percent float64
}

// Discount applies a percentage discount to a price.
func Discount() widget.Widget {
	return widget.Definition[discountInput, float64]{
		Meta: widget.Info{
			Slug:        "discount",
			Title:       "Discount Calculator",
			Category:    widget.CategoryFinance,
			Description: "Sale price and savings after a percentage discount.",
			Fields: []widget.Field{
				widget.Money("price", "Original price"),
				widget.Number("percent", "Discount").WithUnit("%"),
			},
		},
		Gather: func(f widget.Form) (discountInput, error) {
			in := discountInput{price: f.Number("price"), percent: f.Number("percent")}
			return in, validation.First(
				validation.Positive("price", "Original price", in.price),
				validation.PercentRange("percent", "Discount", in.percent, 0, 100),
			)
		},
		Compute: func(in discountInput) float64 {
			return mathutil.ApplyPercentage(in.price, in.percent)
		},
		Present: func(f *format.Formatter, in discountInput, saving float64) widget.Result {
			var r widget.Result
			r.Headline = "Discount"
			r.Emphasize("Sale price", f.Currency(in.price-saving))
			r.Add("You save", f.Currency(saving))
			r.Summary = fmt.Sprintf("%s off %s: pay %s.", f.Percent(in.percent), f.Currency(in.price), f.Currency(in.price-saving))
			return r
		},
	}
}

const defaultTipPercent = 10.0

type tipInput struct {
	bill    float64
	percent float64
	people  float64
}

type tipOutput struct {
	tip       float64
	total     float64
	perPerson float64
}

// Tip splits a bill plus gratuity between people.
func Tip() widget.Widget {
	return widget.Definition[tipInput, tipOutput]{
		Meta: widget.Info{
			Slug:        "tip",
			Title:       "Tip Calculator",
			Category:    widget.CategoryFinance,
			Description: "Tip amount and each person's share of the bill.",
			Fields: []widget.Field{
				widget.Money("bill", "Bill amount"),
				widget.Number("percent", "Tip").WithUnit("%").AsOptional().
					WithDefault(format.Fixed(defaultTipPercent, 0)),
				widget.Number("people", "Number of people").AsOptional().WithDefault("1"),
			},
		},
		Gather: func(f widget.Form) (tipInput, error) {
			in := tipInput{
				bill:    f.Number("bill"),
				percent: f.Optional("percent", defaultTipPercent),
				people:  f.Optional("people", 1),
			}
			return in, validation.First(
				validation.Positive("bill", "Bill amount", in.bill),
				validation.PercentRange("percent", "Tip", in.percent, 0, 100),
				validation.Positive("people", "Number of people", in.people),
				validation.Integer("people", "Number of people", in.people),
			)
		},
		Compute: func(in tipInput) tipOutput {
			tip := mathutil.ApplyPercentage(in.bill, in.percent)
			total := in.bill + tip
			return tipOutput{tip: tip, total: total, perPerson: total / in.people}
		},
		Present: func(f *format.Formatter, in tipInput, out tipOutput) widget.Result {
			var r widget.Result
			r.Headline = "Tip"
			r.Add("Tip", f.Currency(out.tip))
			r.Add("Total", f.Currency(out.total))
			r.Emphasize("Per person", f.Currency(out.perPerson))
			r.Summary = fmt.Sprintf("Each of %s pays %s.",
				format.Plural(int(in.people), "person", "people"), f.Currency(out.perPerson))
			return r
		},
	}
}

// PayPeriod is the period a salary figure is quoted in.
type PayPeriod string

// Pay periods.
const (
	PayHourly  PayPeriod = "hourly"
	PayDaily   PayPeriod = "daily"
	PayWeekly  PayPeriod = "weekly"
	PayMonthly PayPeriod = "monthly"
	PayAnnual  PayPeriod = "annual"
)

type salaryInput struct {
	amount      float64
	period      PayPeriod
	hoursPerDay float64
	daysPerWeek float64
}

type salaryOutput struct {
	hourly  float64
	daily   float64
	weekly  float64
	monthly float64
	annual  float64
}

// Salary converts pay between hourly, daily, weekly, monthly and annual.
func Salary() widget.Widget {
	return widget.Definition[salaryInput, salaryOutput]{
		Meta: widget.Info{
			Slug:        "salary",
			Title:       "Salary Converter",
			Category:    widget.CategoryFinance,
			Description: "Convert pay between hourly, daily, weekly, monthly and annual figures.",
			Fields: []widget.Field{
				widget.Money("amount", "Pay"),
				widget.Select("period", "Paid",
					widget.Option{Value: string(PayMonthly), Label: "Monthly"},
					widget.Option{Value: string(PayHourly), Label: "Hourly"},
					widget.Option{Value: string(PayDaily), Label: "Daily"},
					widget.Option{Value: string(PayWeekly), Label: "Weekly"},
					widget.Option{Value: string(PayAnnual), Label: "Annually"},
				),
				widget.Number("hours", "Hours per week").AsOptional().WithDefault("40"),
				widget.Number("days", "Days per week").AsOptional().WithDefault("5"),
			},
		},
		Gather: func(f widget.Form) (salaryInput, error) {
			hours := f.Optional("hours", 40)
			in := salaryInput{
				amount:      f.Number("amount"),
				period:      widget.Choice(f, "period", PayMonthly, PayHourly, PayDaily, PayWeekly, PayMonthly, PayAnnual),
				daysPerWeek: f.Optional("days", 5),
			}
			err := validation.First(
				validation.Positive("amount", "Pay", in.amount),
				validation.Positive("hours", "Hours per week", hours),
				validation.Range("hours", "Hours per week", hours, 0, 168),
				validation.Positive("days", "Days per week", in.daysPerWeek),
				validation.Range("days", "Days per week", in.daysPerWeek, 0, 7),
			)
			if err == nil {
				in.hoursPerDay = hours / in.daysPerWeek
			}
			return in, err
		},
		Compute: func(in salaryInput) salaryOutput {
			var annual float64
			switch in.period {
			case PayHourly:
				annual = in.amount * in.hoursPerDay * in.daysPerWeek * constants.WeeksPerYear
			case PayDaily:
				annual = in.amount * in.daysPerWeek * constants.WeeksPerYear
			case PayWeekly:
				annual = in.amount * constants.WeeksPerYear
			case PayAnnual:
				annual = in.amount
			default:
				annual = in.amount * constants.MonthsPerYear
			}
			weekly := annual / constants.WeeksPerYear
			daily := weekly / in.daysPerWeek
			return salaryOutput{
				hourly:  daily / in.hoursPerDay,
				daily:   daily,
				weekly:  weekly,
				monthly: annual / constants.MonthsPerYear,
				annual:  annual,
			}
		},
		Present: func(f *format.Formatter, _ salaryInput, out salaryOutput) widget.Result {
			var r widget.Result
			r.Headline = "Salary"
			r.Add("Hourly", f.Currency(out.hourly))
			r.Add("Daily", f.Currency(out.daily))
			r.Add("Weekly", f.Currency(out.weekly))
			r.Emphasize("Monthly", f.Currency(out.monthly))
			r.Emphasize("Annual", f.Currency(out.annual))
			r.Summary = fmt.Sprintf("%s a year is %s a month.", f.Currency(out.annual), f.Currency(out.monthly))
			return r
		},
	}
}

type dtiInput struct {
	income float64
	debts  float64
}

// DebtToIncome rates monthly debt payments against gross monthly income.
func DebtToIncome() widget.Widget {
	return widget.Definition[dtiInput, float64]{
		Meta: widget.Info{
			Slug:        "debt-to-income",
			Title:       "Debt-to-Income Ratio",
			Category:    widget.CategoryFinance,
			Description: "Share of gross monthly income spent on debt repayments.",
			Fields: []widget.Field{
				widget.Money("income", "Gross monthly income"),
				widget.Money("debts", "Monthly debt repayments"),
			},
		},
		Gather: func(f widget.Form) (dtiInput, error) {
			in := dtiInput{income: f.Number("income"), debts: f.Number("debts")}
			return in, validation.First(
				validation.Positive("income", "Gross monthly income", in.income),
				validation.NonNegative("debts", "Monthly debt repayments", in.debts),
			)
		},
		Compute: func(in dtiInput) float64 {
			return mathutil.CalculatePercentage(in.debts, in.income)
		},
		Present: func(f *format.Formatter, _ dtiInput, ratio float64) widget.Result {
			var r widget.Result
			r.Headline = "Debt-to-income ratio"
			r.Emphasize("Ratio", f.Percent(ratio))
			r.Add("Assessment", DTIBand(ratio))
			r.Summary = "Debt-to-income ratio: " + f.Percent(ratio)
			return r
		},
	}
}

// DTIBand classifies a debt-to-income percentage.
func DTIBand(ratio float64) string {
	switch {
	case ratio <= 36:
		return "Healthy"
	case ratio <= 43:
		return "Manageable"
	case ratio <= 50:
		return "High"
	default:
		return "Very high"
	}
}
