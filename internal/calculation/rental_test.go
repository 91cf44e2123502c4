package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

func sampleRentals() []domain.RentalProperty {
	return []domain.RentalProperty{
		{
			Address:                 "123 Main St",
			PurchasePrice:           dec.NewMoney(55000),
			RehabCost:               dec.NewMoney(5000),
			ClosingCost:             dec.NewMoney(2000),
			EstimatedValue:          dec.NewMoney(85000),
			MonthlyRent:             dec.NewMoney(900),
			MonthlyOperatingExpense: dec.NewMoney(300),
			InterestRate:            dec.NewPercent(7),
			LoanTermYears:           30,
			PaymentsMade:            12,
		},
		{
			Address:                  "456 Oak Ave",
			PurchasePrice:            dec.NewMoney(120000),
			RehabCost:                dec.NewMoney(10000),
			ClosingCost:              dec.NewMoney(4000),
			LoanAmount:               dec.NewMoney(80000),
			InterestRate:             dec.NewPercent(4.5),
			LoanTermYears:            30,
			PaymentsMade:             60,
			EstimatedValue:           dec.NewMoney(175000),
			MonthlyRent:              dec.NewMoney(1400),
			MonthlyOperatingExpense:  dec.NewMoney(500),
			MonthlyPrincipalInterest: dec.NewMoney(450),
		},
	}
}

func TestCalculateRentalMetrics_NoLoan(t *testing.T) {
	m := CalculateRentalMetrics(sampleRentals()[0], dec.NewPercent(6))

	assert.True(t, m.LoanBalance.IsZero(), "no loan amount means no balance even with loan terms")
	assert.True(t, m.Equity.Equal(d("85000")))
	assert.True(t, m.NetCashFlow.Equal(d("600")))
	assert.True(t, m.NetProceedsIfSold.Equal(d("17900")), "got %s", m.NetProceedsIfSold)
	assert.True(t, m.DerivedPrincipalInterest.IsZero())
}

func TestCalculateRentalMetrics_WithLoan(t *testing.T) {
	p := sampleRentals()[1]
	m := CalculateRentalMetrics(p, dec.NewPercent(6))

	expectedBalance := RemainingLoanBalance(d("80000"), d("0.00375"), 360, 60)
	assert.True(t, m.LoanBalance.Equal(expectedBalance))
	assert.InDelta(t, 72926.33, m.LoanBalance.InexactFloat64(), 0.01)
	assert.InDelta(t, 102073.67, m.Equity.InexactFloat64(), 0.01)
	assert.True(t, m.NetCashFlow.Equal(d("450")))
	assert.InDelta(t, 37573.67, m.NetProceedsIfSold.InexactFloat64(), 0.01)
	assert.InDelta(t, 405.35, m.DerivedPrincipalInterest.InexactFloat64(), 0.01)

	p.LoanTermYears = 0
	p.LoanTermMonths = 360
	assert.True(t, CalculateRentalMetrics(p, dec.NewPercent(6)).LoanBalance.Equal(expectedBalance))
}

func TestCalculateRentalMetrics_EmptyProperty(t *testing.T) {
	m := CalculateRentalMetrics(domain.RentalProperty{}, dec.Percent{})
	assert.True(t, m.Equity.IsZero())
	assert.True(t, m.NetCashFlow.IsZero())
	assert.True(t, m.NetProceedsIfSold.IsZero())
}

func TestSummarizeRentals(t *testing.T) {
	props := sampleRentals()
	metrics := []domain.RentalMetrics{
		CalculateRentalMetrics(props[0], dec.NewPercent(6)),
		CalculateRentalMetrics(props[1], dec.NewPercent(6)),
	}

	totals := SummarizeRentals(metrics)
	require.Equal(t, 2, totals.Count)
	assert.True(t, totals.Value.Equal(d("260000")))
	assert.True(t, totals.NetCashFlow.Equal(d("1050")))
	assert.True(t, totals.MonthlyRent.Equal(d("2300")))
	assert.True(t, totals.Equity.Equal(metrics[0].Equity.Add(metrics[1].Equity)))
	assert.True(t, totals.LoanBalance.Equal(metrics[1].LoanBalance))

	empty := SummarizeRentals(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.Value.IsZero())
}
