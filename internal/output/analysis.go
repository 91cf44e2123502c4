package output

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName      string
	SuccessRate       decimal.Decimal
	FinalAnnualIncome decimal.Decimal
	// IncomeVsGoal is final annual income minus the inflated income goal.
	IncomeVsGoal     decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest Monte Carlo success rate,
// breaking ties on final annual income. Scenarios without a result are skipped.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	type ranked struct {
		name    string
		success decimal.Decimal
		income  decimal.Decimal
		goal    decimal.Decimal
	}
	var ranks []ranked
	for _, sc := range results.Scenarios {
		if sc.Result == nil {
			continue
		}
		success := decimal.NewFromInt(-1)
		if sc.Result.MonteCarlo.Applicable {
			success = sc.Result.MonteCarlo.SuccessRate
		}
		ranks = append(ranks, ranked{sc.Name, success, sc.Result.FinalAnnualIncome, sc.Result.Goal.FutureDesiredAnnualIncome})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if !ranks[i].success.Equal(ranks[j].success) {
			return ranks[i].success.GreaterThan(ranks[j].success)
		}
		return ranks[i].income.GreaterThan(ranks[j].income)
	})
	best := ranks[0]
	delta := best.income.Sub(best.goal)
	pct := decimal.Zero
	if !best.goal.IsZero() {
		pct = delta.Div(best.goal).Mul(decimal.NewFromInt(100))
	}
	return Recommendation{
		ScenarioName:      best.name,
		SuccessRate:       decimal.Max(best.success, decimal.Zero),
		FinalAnnualIncome: best.income,
		IncomeVsGoal:      delta,
		PercentageChange:  pct,
	}
}
