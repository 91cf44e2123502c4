package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// EstimateMonthlyWithdrawal is the sustainable monthly draw from the withdrawal pool.
// Roth balances are drawn tax free; the non-Roth draw is reduced by the assumed tax rate.
func EstimateMonthlyWithdrawal(pools domain.Pools, withdrawalRate, taxRateNonRoth dec.Percent) decimal.Decimal {
	rate := withdrawalRate.Rate()
	roth := pools.Roth.Mul(rate)
	nonRoth := dec.NewMoneyFromDecimal(pools.NonRoth.Mul(rate)).ApplyTaxRate(taxRateNonRoth.Rate())
	return dec.NewMoneyFromDecimal(roth.Add(nonRoth.Decimal)).Monthly().Decimal
}
