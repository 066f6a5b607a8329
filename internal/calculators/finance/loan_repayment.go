package finance

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/loans"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

type loanInput struct {
	amount float64
	rate   float64
	months int
	extra  float64
}

// LoanRepayment amortizes a fixed-rate loan, optionally with a fixed extra
// monthly payment, and summarises the schedule per year.
func LoanRepayment() widget.Widget {
	return widget.Definition[loanInput, loans.Amortization]{
		Meta: widget.Info{
			Slug:        "loan-repayment",
			Title:       "Loan Repayment Calculator",
			Category:    widget.CategoryFinance,
			Description: "Monthly instalment, total interest and payoff time for a fixed-rate loan.",
			Fields: []widget.Field{
				widget.Money("amount", "Loan amount"),
				widget.Number("rate", "Interest rate").WithUnit("% p.a."),
				widget.Number("years", "Loan term").WithUnit("years"),
				widget.Money("extra", "Extra monthly payment").AsOptional().WithHint("Defaults to 0."),
			},
		},
		Gather:  gatherLoan,
		Compute: computeLoan,
		Present: presentLoan,
	}
}

func gatherLoan(f widget.Form) (loanInput, error) {
	in := loanInput{
		amount: f.Number("amount"),
		rate:   f.Number("rate"),
		extra:  f.Optional("extra", 0),
	}
	years := f.Number("years")
	err := validation.First(
		validation.Positive("amount", "Loan amount", in.amount),
		validation.PercentRange("rate", "Interest rate", in.rate, 0, 100),
		validation.Positive("years", "Loan term", years),
		validation.Range("years", "Loan term", years, 0, 50),
		validation.NonNegative("extra", "Extra monthly payment", in.extra),
	)
	if err != nil {
		return in, err
	}
	in.months = int(math.Round(years * constants.MonthsPerYear))
	if in.months < 1 {
		return in, validation.Invalid("years", "Loan term must be at least one month.")
	}
	return in, nil
}

func computeLoan(in loanInput) loans.Amortization {
	return loans.GenerateSchedule(in.amount, in.rate, in.months, in.extra)
}

func presentLoan(f *format.Formatter, in loanInput, out loans.Amortization) widget.Result {
	var r widget.Result
	r.Headline = "Loan repayment"
	r.Emphasize("Monthly payment", f.Currency(out.MonthlyPayment+in.extra))
	if in.extra > 0 {
		r.Add("Of which extra payment", f.Currency(in.extra))
	}
	r.Add("Total paid", f.Currency(out.TotalPaid))
	r.Add("Total interest", f.Currency(out.TotalInterest))
	r.Add("Paid off in", format.Months(out.Months()))
	if saved := in.months - out.Months(); saved > 0 {
		r.Note(fmt.Sprintf("Extra payments shorten the loan by %s.", format.Months(saved)))
	}

	table := widget.Table{
		Caption: "Yearly summary",
		Header:  []string{"Year", "Principal", "Interest", "Balance"},
	}
	var principal, interest float64
	for i, p := range out.Payments {
		principal += p.Principal
		interest += p.Interest
		if p.Month%constants.MonthsPerYear == 0 || i == len(out.Payments)-1 {
			year := (p.Month + constants.MonthsPerYear - 1) / constants.MonthsPerYear
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(year),
				f.Currency(principal),
				f.Currency(interest),
				f.Currency(p.RemainingPrincipal),
			})
			principal, interest = 0, 0
		}
	}
	r.Tables = append(r.Tables, table)

	r.Summary = fmt.Sprintf("A loan of %s at %s%% costs %s per month.",
		f.Currency(in.amount), format.Fixed(in.rate, 2), f.Currency(out.MonthlyPayment+in.extra))
	return r
}
