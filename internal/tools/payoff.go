package tools

import (
	"errors"
	"math"
	"sort"
)

type Debt struct {
	Name         string  `json:"name"`
	Balance      float64 `json:"balance"`
	MinPayment   float64 `json:"min_payment"`
	InterestRate float64 `json:"interest_rate"` // annual, percent
}

type PayoffEstimate struct {
	Months              float64 `json:"months"`
	TotalDebt           float64 `json:"total_debt"`
	TotalMinPayments    float64 `json:"total_min_payments"`
	AverageInterestRate float64 `json:"average_interest_rate"`
}

// ErrPaymentTooLow means a debt's monthly payment does not even cover the
// interest accruing on it, so the balance never amortizes.
var ErrPaymentTooLow = errors.New("monthly payment does not cover accruing interest")

// EstimatePayoff computes the avalanche payoff horizon: debts are paid
// highest interest rate first, and the whole extra payment goes to the
// debt currently at the top. The result is the number of months until the
// last debt is gone, assuming minimum payments continue on the rest.
func EstimatePayoff(debts []Debt, extraPayment float64) (PayoffEstimate, error) {
	est := PayoffEstimate{
		TotalDebt:           TotalDebt(debts),
		TotalMinPayments:    TotalMinPayments(debts),
		AverageInterestRate: AverageInterestRate(debts),
	}

	if len(debts) == 0 {
		return est, nil
	}

	sorted := make([]Debt, len(debts))
	copy(sorted, debts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].InterestRate > sorted[j].InterestRate
	})

	var totalMonths float64
	remainingExtra := extraPayment

	for _, debt := range sorted {
		monthlyRate := debt.InterestRate / 100 / 12
		payment := debt.MinPayment + remainingExtra

		if payment <= 0 {
			return PayoffEstimate{}, ErrPaymentTooLow
		}

		var months float64
		if monthlyRate == 0 {
			months = debt.Balance / payment
		} else {
			// Closed-form annuity horizon. The log argument goes
			// non-positive exactly when interest outruns the payment.
			arg := 1 - (debt.Balance*monthlyRate)/payment
			if arg <= 0 {
				return PayoffEstimate{}, ErrPaymentTooLow
			}
			months = -math.Log(arg) / math.Log(1+monthlyRate)
		}

		totalMonths = math.Max(totalMonths, months)
		remainingExtra = 0
	}

	est.Months = totalMonths
	return est, nil
}

func TotalDebt(debts []Debt) float64 {
	var sum float64
	for _, debt := range debts {
		sum += debt.Balance
	}
	return sum
}

func TotalMinPayments(debts []Debt) float64 {
	var sum float64
	for _, debt := range debts {
		sum += debt.MinPayment
	}
	return sum
}

// AverageInterestRate is balance-weighted.
func AverageInterestRate(debts []Debt) float64 {
	total := TotalDebt(debts)
	if total == 0 {
		return 0
	}

	var weighted float64
	for _, debt := range debts {
		weighted += debt.InterestRate * debt.Balance
	}
	return weighted / total
}
