package loans

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		expected  float64
	}{
		{"Standard 30 year mortgage", 200000, 6.0, 360, 1199.10},
		{"Five year car loan", 25000, 4.5, 60, 466.08},
		{"Zero interest", 12000, 0, 12, 1000},
		{"Zero term", 12000, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMonthlyPayment(tt.principal, tt.rate, tt.term)
			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestCalculateBalloonPayment(t *testing.T) {
	// A balloon equal to the principal at zero interest leaves nothing to amortize.
	if got := CalculateBalloonPayment(10000, 10000, 0, 12); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}

	without := CalculateBalloonPayment(300000, 0, 12, 72)
	with := CalculateBalloonPayment(300000, 90000, 12, 72)
	if with >= without {
		t.Errorf("balloon should lower the instalment: %v >= %v", with, without)
	}

	// Paying the instalment for the full term must leave exactly the balloon.
	balance := 300000.0
	for i := 0; i < 72; i++ {
		balance += CalculateInterestPayment(balance, 12)
		balance -= with
	}
	if math.Abs(balance-90000) > 0.01 {
		t.Errorf("expected remaining balance of 90000, got %.4f", balance)
	}
}

func TestPresentValueInvertsPayment(t *testing.T) {
	payment := CalculateMonthlyPayment(150000, 11.75, 240)
	if got := PresentValue(payment, 11.75, 240); math.Abs(got-150000) > 0.01 {
		t.Errorf("PresentValue() = %.4f, expected 150000", got)
	}
	if got := PresentValue(100, 0, 12); got != 1200 {
		t.Errorf("PresentValue() at zero interest = %v, expected 1200", got)
	}
}

func TestGenerateSchedule(t *testing.T) {
	schedule := GenerateSchedule(12000, 0, 12, 0)
	if schedule.Months() != 12 {
		t.Fatalf("expected 12 payments, got %d", schedule.Months())
	}
	if schedule.TotalInterest != 0 {
		t.Errorf("expected no interest, got %v", schedule.TotalInterest)
	}
	if math.Abs(schedule.TotalPaid-12000) > 0.001 {
		t.Errorf("expected total paid 12000, got %v", schedule.TotalPaid)
	}
	last := schedule.Payments[len(schedule.Payments)-1]
	if last.RemainingPrincipal != 0 {
		t.Errorf("expected zero remaining principal, got %v", last.RemainingPrincipal)
	}
}

func TestGenerateScheduleWithExtraPayments(t *testing.T) {
	base := GenerateSchedule(200000, 6, 360, 0)
	faster := GenerateSchedule(200000, 6, 360, 500)

	if faster.Months() >= base.Months() {
		t.Errorf("extra payments should shorten the loan: %d >= %d", faster.Months(), base.Months())
	}
	if faster.TotalInterest >= base.TotalInterest {
		t.Errorf("extra payments should reduce interest: %.2f >= %.2f", faster.TotalInterest, base.TotalInterest)
	}
	for _, p := range faster.Payments {
		if p.RemainingPrincipal < 0 {
			t.Fatalf("month %d overpaid: remaining %.2f", p.Month, p.RemainingPrincipal)
		}
	}
	if math.Abs(base.TotalPaid-base.TotalInterest-200000) > 0.01 {
		t.Errorf("principal repaid %.2f, expected 200000", base.TotalPaid-base.TotalInterest)
	}
}

func TestSimulatePayoff(t *testing.T) {
	tests := []struct {
		name           string
		balance        float64
		apr            float64
		payment        float64
		expectedMonths int
		expectedErr    error
	}{
		{"Zero APR", 1000, 0, 100, 10, nil},
		{"Uneven final payment", 1050, 0, 100, 11, nil},
		{"Interest bearing", 5000, 18, 200, 32, nil},
		{"Payment equals interest", 10000, 12, 100, 0, ErrPaymentTooLow},
		{"Exceeds cap", 100000, 24, 2000.01, 0, ErrNotPaidOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SimulatePayoff(tt.balance, tt.apr, tt.payment)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if err == nil && result.Months != tt.expectedMonths {
				t.Errorf("expected %d months, got %d", tt.expectedMonths, result.Months)
			}
		})
	}

	result, err := SimulatePayoff(1000, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if result.TotalInterest != 0 || result.TotalPaid != 1000 {
		t.Errorf("expected no interest and 1000 paid, got %+v", result)
	}
}
