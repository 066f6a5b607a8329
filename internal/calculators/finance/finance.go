// Package finance holds the money calculators: loans, interest, tax and
// business ratios.
package finance

import (
	"github.com/iwvelando/calc-widgets/internal/widget"
)

// All returns every finance calculator.
func All() []widget.Widget {
	return []widget.Widget{
		LoanRepayment(),
		CreditCardPayoff(),
		CompoundInterest(),
		SimpleInterest(),
		SavingsGoal(),
		VAT(),
		EBITDA(),
		ProfitMargin(),
		BreakEven(),
		ROI(),
		Inflation(),
		Discount(),
		Tip(),
		Salary(),
		DebtToIncome(),
		CarFinance(),
		BondAffordability(),
	}
}
