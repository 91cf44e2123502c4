package calculation

import (
	"github.com/shopspring/decimal"

	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// RemainingLoanBalance returns the principal still owed on a fixed-rate,
// fixed-payment loan after paymentsMade of totalPayments monthly payments.
// It never fails: a non-positive principal yields zero and a non-positive
// term returns the principal unchanged.
func RemainingLoanBalance(principal, monthlyRate decimal.Decimal, totalPayments, paymentsMade int) decimal.Decimal {
	if !principal.IsPositive() {
		return decimal.Zero
	}
	if totalPayments <= 0 {
		return principal
	}
	paid := min(max(paymentsMade, 0), totalPayments)

	var balance decimal.Decimal
	if !monthlyRate.IsPositive() {
		// straight line: P - (P/n)*p, written so p == n is exactly zero
		n := decimal.NewFromInt(int64(totalPayments))
		balance = principal.Mul(n.Sub(decimal.NewFromInt(int64(paid)))).Div(n)
	} else {
		growthN := dec.Compound(monthlyRate, totalPayments)
		growthP := dec.Compound(monthlyRate, paid)
		balance = principal.Mul(growthN.Sub(growthP)).Div(growthN.Sub(decimal.NewFromInt(1)))
	}
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// MonthlyPayment is the level payment that amortizes principal over totalPayments months.
func MonthlyPayment(principal, monthlyRate decimal.Decimal, totalPayments int) decimal.Decimal {
	if !principal.IsPositive() || totalPayments <= 0 {
		return decimal.Zero
	}
	if !monthlyRate.IsPositive() {
		return principal.Div(decimal.NewFromInt(int64(totalPayments)))
	}
	growth := dec.Compound(monthlyRate, totalPayments)
	return principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}
