// Package loans provides common loan processing utilities: level payments,
// amortization schedules and revolving credit payoff simulation.
package loans

import (
	"errors"
	"math"

	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/mathutil"
)

var (
	// ErrPaymentTooLow means the payment does not cover the first month's interest.
	ErrPaymentTooLow = errors.New("payment does not cover the monthly interest")

	// ErrNotPaidOff means the balance survives the simulation cap.
	ErrNotPaidOff = errors.New("balance is not paid off within the simulation limit")
)

// Payment holds the values for a given payment.
type Payment struct {
	Month              int
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// MonthlyRate converts an annual percentage rate to a periodic monthly rate.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	return CalculateBalloonPayment(principal, 0, annualInterestRate, termMonths)
}

// CalculateBalloonPayment calculates the level monthly payment that leaves
// balloon outstanding after termMonths.
func CalculateBalloonPayment(principal, balloon, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return (principal - balloon) / float64(termMonths)
	}

	periodicInterestRate := MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	financed := principal - balloon/power
	discountFactor := (power - 1.00) / power
	return financed * periodicInterestRate / discountFactor
}

// PresentValue returns the loan amount a level monthly payment can service.
func PresentValue(payment, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		return payment * float64(termMonths)
	}
	rate := MonthlyRate(annualInterestRate)
	return payment * (1 - math.Pow(1+rate, -float64(termMonths))) / rate
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// Amortization is a complete repayment schedule.
type Amortization struct {
	MonthlyPayment float64
	Payments       []Payment
	TotalPaid      float64
	TotalInterest  float64
}

// Months returns the number of payments until the balance reached zero.
func (a Amortization) Months() int {
	return len(a.Payments)
}

// GenerateSchedule creates the month-by-month schedule for a fixed-rate loan.
// extra is paid towards principal every month, which may end the loan early;
// the final payment is trimmed so the balance never goes negative.
func GenerateSchedule(principal, annualInterestRate float64, termMonths int, extra float64) Amortization {
	if termMonths > constants.MaxSimulationMonths {
		termMonths = constants.MaxSimulationMonths
	}
	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, termMonths)
	schedule := Amortization{MonthlyPayment: monthlyPayment}

	balance := principal
	for month := 1; month <= termMonths && balance > 0; month++ {
		interest := CalculateInterestPayment(balance, annualInterestRate)
		principalPaid := monthlyPayment - interest + extra
		if month == termMonths || mathutil.Round(balance-principalPaid) <= 0 {
			// We will get machine error otherwise so just settle the balance.
			principalPaid = balance
		}
		balance -= principalPaid

		payment := Payment{
			Month:              month,
			Payment:            principalPaid + interest,
			Principal:          principalPaid,
			Interest:           interest,
			RemainingPrincipal: balance,
		}
		schedule.Payments = append(schedule.Payments, payment)
		schedule.TotalPaid += payment.Payment
		schedule.TotalInterest += interest
	}
	return schedule
}

// Payoff summarises a revolving balance paid down with a fixed payment.
type Payoff struct {
	Months        int
	TotalInterest float64
	TotalPaid     float64
	FinalPayment  float64
}

// SimulatePayoff pays balance down with a fixed monthly payment, accruing
// interest monthly, for at most constants.MaxSimulationMonths months.
func SimulatePayoff(balance, annualInterestRate, monthlyPayment float64) (Payoff, error) {
	if monthlyPayment <= CalculateInterestPayment(balance, annualInterestRate) {
		return Payoff{}, ErrPaymentTooLow
	}

	var result Payoff
	for result.Months < constants.MaxSimulationMonths {
		if mathutil.Round(balance) <= 0 {
			return result, nil
		}
		interest := CalculateInterestPayment(balance, annualInterestRate)
		balance += interest
		payment := math.Min(monthlyPayment, balance)
		balance -= payment

		result.Months++
		result.TotalInterest += interest
		result.TotalPaid += payment
		result.FinalPayment = payment
	}
	if mathutil.Round(balance) > 0 {
		return result, ErrNotPaidOff
	}
	return result, nil
}
