package calculation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// FutureValue compounds currentValue and a level annual contribution forward years at rate g.
//
// Contributions grow as an annuity when g > 0 and add linearly when g == 0.
// When g < 0 contributions are not added at all; only the current value decays.
func FutureValue(currentValue, annualContribution, g decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return currentValue
	}
	growth := dec.Compound(g, years)
	fv := currentValue.Mul(growth)
	switch {
	case g.IsPositive():
		fv = fv.Add(annualContribution.Mul(growth.Sub(decimal.NewFromInt(1))).Div(g))
	case g.IsZero():
		fv = fv.Add(annualContribution.Mul(decimal.NewFromInt(int64(years))))
	}
	return fv
}

// ProjectHolding projects one holding to retirement. The holding is not modified.
func ProjectHolding(h domain.Holding, years int) domain.HoldingProjection {
	current := h.CurrentValue.NonNegative()
	annual := dec.NewMoneyFromDecimal(h.MonthlyContribution.NonNegative()).Annual().Decimal
	g := h.NetReturn()

	return domain.HoldingProjection{
		ID:             h.ID,
		Holder:         h.Holder,
		AccountType:    h.AccountType,
		Description:    h.Description,
		CurrentValue:   current,
		ProjectedValue: FutureValue(current, annual, g, years),
		NetReturn:      g,
		StdDev:         h.StdDev.Rate(),
		IsRoth:         h.IsRothLike(),
		Treatment:      h.Treatment.Normalized(),
		Distribution:   h.DistributionValue(),
	}
}

// ProjectHoldings projects every holding in order.
func ProjectHoldings(holdings []domain.Holding, years int) []domain.HoldingProjection {
	return lo.Map(holdings, func(h domain.Holding, _ int) domain.HoldingProjection {
		return ProjectHolding(h, years)
	})
}

// RoutePools splits projected holdings into the withdrawal pool and fixed monthly income.
// Main holdings always feed the pool. Other holdings follow their treatment:
// FixedPercent pays Distribution percent of the projected value per year,
// FixedAmount pays Distribution dollars per month and LumpSum pays nothing.
func RoutePools(main, other []domain.HoldingProjection) (domain.Pools, decimal.Decimal) {
	var pools domain.Pools
	fixedMonthly := decimal.Zero

	addToPool := func(p domain.HoldingProjection) {
		if p.IsRoth {
			pools.Roth = pools.Roth.Add(p.ProjectedValue)
		} else {
			pools.NonRoth = pools.NonRoth.Add(p.ProjectedValue)
		}
	}

	for _, p := range main {
		pools.MainProjectedTotal = pools.MainProjectedTotal.Add(p.ProjectedValue)
		addToPool(p)
	}

	for _, p := range other {
		pools.OtherProjectedTotal = pools.OtherProjectedTotal.Add(p.ProjectedValue)
		switch p.Treatment.Normalized() {
		case domain.TreatmentPortfolio:
			addToPool(p)
		case domain.TreatmentFixedPercent:
			annual := p.ProjectedValue.Mul(dec.RateFromNumber(p.Distribution))
			fixedMonthly = fixedMonthly.Add(dec.NewMoneyFromDecimal(annual).Monthly().Decimal)
		case domain.TreatmentFixedAmount:
			fixedMonthly = fixedMonthly.Add(p.Distribution)
		}
	}

	pools.Total = pools.Roth.Add(pools.NonRoth)
	return pools, fixedMonthly
}

// PortfolioHoldings returns the holdings whose value ends up in the withdrawal pool.
func PortfolioHoldings(main, other []domain.Holding) []domain.Holding {
	routed := lo.Filter(other, func(h domain.Holding, _ int) bool {
		return h.Treatment.Normalized() == domain.TreatmentPortfolio
	})
	return append(append([]domain.Holding{}, main...), routed...)
}

// ProjectionSeries is the combined projected value of holdings for each year 0..years.
func ProjectionSeries(holdings []domain.Holding, years int) []domain.YearValue {
	if years <= 0 {
		return nil
	}
	series := make([]domain.YearValue, 0, years+1)
	for y := 0; y <= years; y++ {
		total := lo.Reduce(holdings, func(acc decimal.Decimal, h domain.Holding, _ int) decimal.Decimal {
			return acc.Add(ProjectHolding(h, y).ProjectedValue)
		}, decimal.Zero)
		series = append(series, domain.YearValue{Year: y, Value: total})
	}
	return series
}
