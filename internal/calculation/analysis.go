package calculation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
)

const (
	onTrackMessage   = "Based on all projected income sources, the plan is on track to meet the desired retirement income."
	shortfallMessage = "Projected annual income is less than the desired retirement income."
)

// AnalyzeGoal compares the steady-state annual income with the desired income
// inflated to the retirement year.
func AnalyzeGoal(futureDesiredAnnual, finalAnnual decimal.Decimal) domain.Goal {
	goal := domain.Goal{
		FutureDesiredAnnualIncome: futureDesiredAnnual,
		FinalAnnualIncome:         finalAnnual,
	}
	if !futureDesiredAnnual.IsPositive() {
		return goal
	}

	goal.Applicable = true
	goal.OnTrack = finalAnnual.GreaterThanOrEqual(futureDesiredAnnual)
	if goal.OnTrack {
		goal.Message = onTrackMessage
	} else {
		goal.Shortfall = futureDesiredAnnual.Sub(finalAnnual)
		goal.Message = shortfallMessage
	}
	return goal
}

// AnalyzeBudget totals the monthly budget. Negative amounts count as zero;
// NetSavings is negative when expenses exceed income.
func AnalyzeBudget(income []domain.IncomeItem, expenses []domain.ExpenseItem) domain.Budget {
	in := lo.Reduce(income, func(acc decimal.Decimal, i domain.IncomeItem, _ int) decimal.Decimal {
		return acc.Add(i.Amount.NonNegative())
	}, decimal.Zero)
	out := lo.Reduce(expenses, func(acc decimal.Decimal, e domain.ExpenseItem, _ int) decimal.Decimal {
		return acc.Add(e.Amount.NonNegative())
	}, decimal.Zero)
	return domain.Budget{
		TotalIncome:   in,
		TotalExpenses: out,
		NetSavings:    in.Sub(out),
	}
}

// NetWorthInputs are the pieces of the household balance sheet.
type NetWorthInputs struct {
	Snapshot     *domain.Snapshot
	Pools        domain.Pools
	RentalTotals domain.RentalTotals
}

// AnalyzeNetWorth computes today's net worth and the holistic starting balance:
// every projected holding regardless of treatment, plus current rental equity
// and other assets.
func AnalyzeNetWorth(in NetWorthInputs) domain.NetWorth {
	s := in.Snapshot
	assets := lo.Reduce(s.Assets, func(acc decimal.Decimal, a domain.OtherAsset, _ int) decimal.Decimal {
		return acc.Add(a.Value.NonNegative())
	}, decimal.Zero)
	liabilities := lo.Reduce(s.Liabilities, func(acc decimal.Decimal, l domain.Liability, _ int) decimal.Decimal {
		return acc.Add(l.Balance.NonNegative())
	}, decimal.Zero)
	holdings := append(append([]domain.Holding{}, s.MainInvestments...), s.OtherInvestments...)
	investments := lo.Reduce(holdings, func(acc decimal.Decimal, h domain.Holding, _ int) decimal.Decimal {
		return acc.Add(h.CurrentValue.NonNegative())
	}, decimal.Zero)

	return domain.NetWorth{
		CurrentAssets:      assets,
		CurrentInvestments: investments,
		RentalValue:        in.RentalTotals.Value,
		Liabilities:        liabilities,
		RentalDebt:         in.RentalTotals.LoanBalance,
		NetWorth: assets.Add(investments).Add(in.RentalTotals.Value).
			Sub(liabilities).Sub(in.RentalTotals.LoanBalance),
		HolisticStartingBalance: in.Pools.MainProjectedTotal.
			Add(in.Pools.OtherProjectedTotal).
			Add(in.RentalTotals.Equity).
			Add(assets),
	}
}
