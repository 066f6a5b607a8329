package finance

import (
	"errors"
	"fmt"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/loans"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

type cardInput struct {
	balance float64
	apr     float64
	payment float64
	payoff  loans.Payoff
}

// CreditCardPayoff simulates paying a card balance down with a fixed monthly
// payment.
func CreditCardPayoff() widget.Widget {
	return widget.Definition[cardInput, loans.Payoff]{
		Meta: widget.Info{
			Slug:        "credit-card-payoff",
			Title:       "Credit Card Payoff Calculator",
			Category:    widget.CategoryFinance,
			Description: "How long a fixed monthly payment takes to clear a card balance.",
			Fields: []widget.Field{
				widget.Money("balance", "Card balance"),
				widget.Number("apr", "Interest rate (APR)").WithUnit("%"),
				widget.Money("payment", "Monthly payment"),
			},
		},
		Gather:  gatherCard,
		Compute: computeCard,
		Present: presentCard,
	}
}

// gatherCard runs the payoff simulation itself so that every balance the
// simulation cannot clear surfaces as an input error on the payment field.
func gatherCard(f widget.Form) (cardInput, error) {
	in := cardInput{
		balance: f.Number("balance"),
		apr:     f.Number("apr"),
		payment: f.Number("payment"),
	}
	err := validation.First(
		validation.Positive("balance", "Card balance", in.balance),
		validation.PercentRange("apr", "Interest rate", in.apr, 0, 100),
		validation.Positive("payment", "Monthly payment", in.payment),
	)
	if err != nil {
		return in, err
	}

	in.payoff, err = loans.SimulatePayoff(in.balance, in.apr, in.payment)
	switch {
	case errors.Is(err, loans.ErrPaymentTooLow):
		interest := loans.CalculateInterestPayment(in.balance, in.apr)
		return in, validation.Invalid("payment",
			"Monthly payment must be more than the first month's interest of %s.", format.FormatCurrency(interest))
	case errors.Is(err, loans.ErrNotPaidOff):
		return in, validation.Invalid("payment",
			"At this payment the balance takes more than %s to clear. Increase the monthly payment.",
			format.Months(constants.MaxSimulationMonths))
	case err != nil:
		return in, err
	}
	return in, nil
}

func computeCard(in cardInput) loans.Payoff {
	return in.payoff
}

func presentCard(f *format.Formatter, in cardInput, out loans.Payoff) widget.Result {
	var r widget.Result
	r.Headline = "Credit card payoff"
	r.Emphasize("Months to pay off", fmt.Sprintf("%d", out.Months))
	r.Add("Time to pay off", format.Months(out.Months))
	r.Add("Total interest", f.Currency(out.TotalInterest))
	r.Add("Total paid", f.Currency(out.TotalPaid))
	r.Add("Final payment", f.Currency(out.FinalPayment))
	r.Summary = fmt.Sprintf("Paying %s a month clears a %s card balance in %s.",
		f.Currency(in.payment), f.Currency(in.balance), format.Months(out.Months))
	return r
}
