package calculation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// CalculateRentalMetrics derives cash flow, loan balance, equity and sale proceeds for one property.
func CalculateRentalMetrics(p domain.RentalProperty, sellingCost dec.Percent) domain.RentalMetrics {
	value := p.EstimatedValue.NonNegative()
	rent := p.MonthlyRent.NonNegative()
	opex := p.MonthlyOperatingExpense.NonNegative()
	pi := p.MonthlyPrincipalInterest.NonNegative()
	loan := p.LoanAmount.NonNegative()

	monthlyRate := dec.NewMoneyFromDecimal(p.InterestRate.Rate()).Monthly().Decimal
	term := p.TermMonths()

	balance := decimal.Zero
	if loan.IsPositive() {
		balance = RemainingLoanBalance(loan, monthlyRate, term, int(p.PaymentsMade))
	}

	basis := p.PurchasePrice.NonNegative().
		Add(p.RehabCost.NonNegative()).
		Add(p.ClosingCost.NonNegative()).
		Sub(loan)
	saleNet := value.Sub(balance).Sub(value.Mul(sellingCost.Rate()))

	return domain.RentalMetrics{
		Address:                  p.Address,
		EstimatedValue:           value,
		LoanBalance:              balance,
		Equity:                   value.Sub(balance),
		MonthlyRent:              rent,
		MonthlyOperatingExpense:  opex,
		MonthlyPrincipalInterest: pi,
		NetCashFlow:              rent.Sub(opex).Sub(pi),
		NetProceedsIfSold:        saleNet.Sub(basis),
		DerivedPrincipalInterest: MonthlyPayment(loan, monthlyRate, term),
	}
}

// SummarizeRentals totals metrics across properties.
func SummarizeRentals(metrics []domain.RentalMetrics) domain.RentalTotals {
	return lo.Reduce(metrics, func(t domain.RentalTotals, m domain.RentalMetrics, _ int) domain.RentalTotals {
		t.Count++
		t.Value = t.Value.Add(m.EstimatedValue)
		t.LoanBalance = t.LoanBalance.Add(m.LoanBalance)
		t.Equity = t.Equity.Add(m.Equity)
		t.MonthlyRent = t.MonthlyRent.Add(m.MonthlyRent)
		t.MonthlyOperatingExpense = t.MonthlyOperatingExpense.Add(m.MonthlyOperatingExpense)
		t.MonthlyPrincipalInterest = t.MonthlyPrincipalInterest.Add(m.MonthlyPrincipalInterest)
		t.NetCashFlow = t.NetCashFlow.Add(m.NetCashFlow)
		t.NetProceedsIfSold = t.NetProceedsIfSold.Add(m.NetProceedsIfSold)
		return t
	}, domain.RentalTotals{})
}
