package finance

import (
	"testing"

	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/loans"
	"github.com/iwvelando/calc-widgets/pkg/testutil"
	"github.com/iwvelando/calc-widgets/pkg/validation"
)

var english = format.New("en", "R")

func evaluate(t *testing.T, w widget.Widget, values map[string]string) widget.Result {
	t.Helper()
	result, err := w.Evaluate(english, widget.FormOf(values))
	if err != nil {
		t.Fatalf("%s: unexpected error %v", w.Info().Slug, err)
	}
	return result
}

func expectValue(t *testing.T, r widget.Result, label, expected string) {
	t.Helper()
	row := testutil.FindRow(&r, label)
	if row == nil {
		t.Fatalf("missing row %q in %+v", label, r.Rows)
	}
	if row.Value != expected {
		t.Errorf("%s = %q, expected %q", label, row.Value, expected)
	}
}

func expectInputError(t *testing.T, w widget.Widget, values map[string]string, field string) {
	t.Helper()
	_, err := w.Evaluate(english, widget.FormOf(values))
	inputErr, ok := validation.AsInputError(err)
	if !ok {
		t.Fatalf("%s: expected input error, got %v", w.Info().Slug, err)
	}
	if inputErr.Field != field {
		t.Errorf("%s: expected error on %s, got %s (%s)", w.Info().Slug, field, inputErr.Field, inputErr.Message)
	}
}

func TestAllSlugsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range All() {
		info := w.Info()
		if seen[info.Slug] {
			t.Errorf("duplicate slug %s", info.Slug)
		}
		seen[info.Slug] = true
		if info.Category != widget.CategoryFinance {
			t.Errorf("%s: unexpected category %s", info.Slug, info.Category)
		}
	}
}

func TestEBITDAOperating(t *testing.T) {
	r := evaluate(t, EBITDA(), map[string]string{
		"mode":         "operating",
		"revenue":      "1000",
		"cogs":         "400",
		"opex":         "200",
		"depreciation": "50",
		"amortization": "20",
	})
	expectValue(t, r, "EBIT", "R 400.00")
	expectValue(t, r, "EBITDA", "R 470.00")
	expectValue(t, r, "EBITDA margin", "47.00%")
}

func TestMarginsIgnoreDisplayLocale(t *testing.T) {
	r, err := EBITDA().Evaluate(nil, widget.FormOf(map[string]string{
		"mode":         "operating",
		"revenue":      "1000",
		"cogs":         "400",
		"opex":         "200",
		"depreciation": "50",
		"amortization": "20",
	}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	expectValue(t, r, "EBITDA margin", "47.00%")

	r, err = ProfitMargin().Evaluate(format.Default(), widget.FormOf(map[string]string{"revenue": "200", "cost": "150"}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	expectValue(t, r, "Profit margin", "25.00%")
	expectValue(t, r, "Markup", "33.33%")
}

func TestEBITDANetIncome(t *testing.T) {
	r := evaluate(t, EBITDA(), map[string]string{
		"mode":         "net-income",
		"netIncome":    "300",
		"interest":     "50",
		"taxes":        "50",
		"depreciation": "70",
	})
	expectValue(t, r, "EBIT", "R 400.00")
	expectValue(t, r, "EBITDA", "R 470.00")
	if _, ok := r.Value("EBITDA margin"); ok {
		t.Error("margin should be omitted without revenue")
	}
}

func TestEBITDARequiresRevenue(t *testing.T) {
	expectInputError(t, EBITDA(), map[string]string{"mode": "operating", "revenue": "0"}, "revenue")
}

func TestCreditCardPayoff(t *testing.T) {
	r := evaluate(t, CreditCardPayoff(), map[string]string{
		"balance": "1000",
		"apr":     "0",
		"payment": "100",
	})
	expectValue(t, r, "Months to pay off", "10")
	expectValue(t, r, "Total interest", "R 0.00")
	expectValue(t, r, "Total paid", "R 1,000.00")
}

func TestCreditCardPayoffRejections(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		field  string
	}{
		{"Zero balance", map[string]string{"balance": "0", "apr": "10", "payment": "100"}, "balance"},
		{"Negative payment", map[string]string{"balance": "1000", "apr": "10", "payment": "-1"}, "payment"},
		{"APR out of range", map[string]string{"balance": "1000", "apr": "150", "payment": "100"}, "apr"},
		{"Payment only covers interest", map[string]string{"balance": "10000", "apr": "12", "payment": "100"}, "payment"},
		{"Takes longer than the cap", map[string]string{"balance": "100000", "apr": "24", "payment": "2000.01"}, "payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectInputError(t, CreditCardPayoff(), tt.values, tt.field)
		})
	}
}

func TestCreditCardPayoffCommaDecimalBalance(t *testing.T) {
	r, err := CreditCardPayoff().Evaluate(format.Default(), widget.FormOf(map[string]string{
		"balance": "1 000,50",
		"apr":     "0",
		"payment": "100",
	}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	expectValue(t, r, "Months to pay off", "11")
	expectValue(t, r, "Total paid", format.Default().Currency(1000.5))
}

func TestCreditCardPayoffMatchesSimulation(t *testing.T) {
	in, err := gatherCard(widget.FormOf(map[string]string{"balance": "5000", "apr": "18", "payment": "250"}))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	expected, err := loans.SimulatePayoff(5000, 18, 250)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}
	if got := computeCard(in); got != expected {
		t.Errorf("computeCard = %+v, expected %+v", got, expected)
	}

	_, err = gatherCard(widget.FormOf(map[string]string{"balance": "100000", "apr": "24", "payment": "2000.01"}))
	inputErr, ok := validation.AsInputError(err)
	if !ok {
		t.Fatalf("expected input error for an unfinished simulation, got %v", err)
	}
	if inputErr.Field != "payment" {
		t.Errorf("field = %q, expected payment", inputErr.Field)
	}
}

func TestLoanRepayment(t *testing.T) {
	r := evaluate(t, LoanRepayment(), map[string]string{
		"amount": "200 000",
		"rate":   "6",
		"years":  "30",
	})
	expectValue(t, r, "Monthly payment", "R 1,199.10")
	expectValue(t, r, "Paid off in", "30 years")
	if len(r.Tables) != 1 || len(r.Tables[0].Rows) != 30 {
		t.Errorf("expected a 30 row yearly table, got %+v", r.Tables)
	}
	expectInputError(t, LoanRepayment(), map[string]string{"amount": "1000", "rate": "5", "years": "0"}, "years")
}

func TestCompoundInterest(t *testing.T) {
	r := evaluate(t, CompoundInterest(), map[string]string{
		"principal":   "1000",
		"rate":        "10",
		"years":       "2",
		"compounding": "annually",
	})
	expectValue(t, r, "Future value", "R 1,210.00")
	expectValue(t, r, "Interest earned", "R 210.00")

	r = evaluate(t, CompoundInterest(), map[string]string{
		"principal":    "0",
		"rate":         "0",
		"years":        "1",
		"contribution": "100",
	})
	expectValue(t, r, "Future value", "R 1,200.00")
}

func TestSimpleInterest(t *testing.T) {
	r := evaluate(t, SimpleInterest(), map[string]string{"principal": "1000", "rate": "5", "years": "3"})
	expectValue(t, r, "Interest", "R 150.00")
	expectValue(t, r, "Total amount", "R 1,150.00")
}

func TestSavingsGoal(t *testing.T) {
	r := evaluate(t, SavingsGoal(), map[string]string{"target": "1000", "deposit": "100"})
	expectValue(t, r, "Time to goal", "10 months")

	r = evaluate(t, SavingsGoal(), map[string]string{"target": "1000", "current": "1000", "deposit": "100"})
	expectValue(t, r, "Time to goal", "Already reached")

	r = evaluate(t, SavingsGoal(), map[string]string{"target": "1000000000", "deposit": "1"})
	if len(r.Notes) == 0 {
		t.Error("expected a note when the goal is out of reach")
	}
}

func TestVAT(t *testing.T) {
	r := evaluate(t, VAT(), map[string]string{"amount": "100"})
	expectValue(t, r, "VAT", "R 15.00")
	expectValue(t, r, "Amount including VAT", "R 115.00")

	r = evaluate(t, VAT(), map[string]string{"amount": "115", "mode": "remove"})
	expectValue(t, r, "VAT", "R 15.00")
	expectValue(t, r, "Amount excluding VAT", "R 100.00")
}

func TestProfitMarginAndBreakEven(t *testing.T) {
	r := evaluate(t, ProfitMargin(), map[string]string{"revenue": "200", "cost": "150"})
	expectValue(t, r, "Profit margin", "25.00%")
	expectValue(t, r, "Markup", "33.33%")

	r = evaluate(t, BreakEven(), map[string]string{"fixed": "1000", "price": "30", "variable": "20"})
	expectValue(t, r, "Break-even units", "100")
	r = evaluate(t, BreakEven(), map[string]string{"fixed": "1001", "price": "30", "variable": "20"})
	expectValue(t, r, "Break-even units", "101")
	expectInputError(t, BreakEven(), map[string]string{"fixed": "1000", "price": "20", "variable": "20"}, "variable")
}

func TestROI(t *testing.T) {
	r := evaluate(t, ROI(), map[string]string{"invested": "1000", "returned": "1210", "years": "2"})
	expectValue(t, r, "ROI", "21.00%")
	expectValue(t, r, "Annualised return", "10.00%")
	expectInputError(t, ROI(), map[string]string{"invested": "1000", "returned": "1210", "years": "0"}, "years")
}

func TestConsumerCalculators(t *testing.T) {
	r := evaluate(t, Discount(), map[string]string{"price": "200", "percent": "25"})
	expectValue(t, r, "Sale price", "R 150.00")

	r = evaluate(t, Tip(), map[string]string{"bill": "300", "people": "3"})
	expectValue(t, r, "Tip", "R 30.00")
	expectValue(t, r, "Per person", "R 110.00")
	expectInputError(t, Tip(), map[string]string{"bill": "300", "people": "2.5"}, "people")

	r = evaluate(t, Inflation(), map[string]string{"amount": "100", "years": "1"})
	expectValue(t, r, "Future cost", "R 105.00")
}

func TestSalary(t *testing.T) {
	r := evaluate(t, Salary(), map[string]string{"amount": "100", "period": "hourly"})
	expectValue(t, r, "Weekly", "R 4,000.00")
	expectValue(t, r, "Annual", "R 208,000.00")
	expectValue(t, r, "Daily", "R 800.00")
}

func TestDTIBand(t *testing.T) {
	tests := map[float64]string{
		20:   "Healthy",
		36:   "Healthy",
		40:   "Manageable",
		50:   "High",
		50.1: "Very high",
	}
	for ratio, expected := range tests {
		if got := DTIBand(ratio); got != expected {
			t.Errorf("DTIBand(%v) = %q, expected %q", ratio, got, expected)
		}
	}
}

func TestCarFinance(t *testing.T) {
	r := evaluate(t, CarFinance(), map[string]string{"price": "12000", "rate": "0", "months": "12"})
	expectValue(t, r, "Monthly instalment", "R 1,000.00")

	expectInputError(t, CarFinance(), map[string]string{"price": "100", "deposit": "100", "rate": "10"}, "deposit")
	expectInputError(t, CarFinance(),
		map[string]string{"price": "100", "deposit": "50", "rate": "10", "balloon": "60"}, "balloon")
}

func TestBondAffordability(t *testing.T) {
	r := evaluate(t, BondAffordability(), map[string]string{"income": "10000", "rate": "0", "years": "20"})
	expectValue(t, r, "Affordable instalment", "R 3,000.00")
	expectValue(t, r, "Maximum loan", "R 720,000.00")

	r = evaluate(t, BondAffordability(), map[string]string{"income": "10000", "rate": "0", "deposit": "80000"})
	expectValue(t, r, "Maximum purchase price", "R 800,000.00")

	r = evaluate(t, BondAffordability(), map[string]string{"income": "10000", "expenses": "8000", "rate": "0", "years": "20"})
	expectValue(t, r, "Affordable instalment", "R 2,000.00")
}

func TestPositiveFieldsRejectZeroAndNegative(t *testing.T) {
	for _, value := range []string{"0", "-5"} {
		expectInputError(t, SimpleInterest(), map[string]string{"principal": value, "rate": "5", "years": "1"}, "principal")
		expectInputError(t, DebtToIncome(), map[string]string{"income": value, "debts": "1"}, "income")
	}
}
