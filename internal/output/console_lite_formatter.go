package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// ConsoleLiteFormatter provides a concise plain-text summary, one block per scenario.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range sortedScenarios(results) {
		r := sc.Result
		if r == nil {
			continue
		}
		success := "N/A"
		if r.MonteCarlo.Applicable {
			success = FormatPercentage(r.MonteCarlo.SuccessRate)
		}
		fmt.Fprintf(&buf, "%s: Pool=%s FinalMonthly=%s Longevity=%s Success=%s\n",
			sc.Name,
			FormatCurrency(r.Pools.Total),
			FormatCurrency(r.FinalMonthlyIncome),
			r.PortfolioLongevity,
			success,
		)
		fmt.Fprintf(&buf, "  RetirementYear=%d Goal=%s NetWorth=%s\n",
			r.RetirementYear, FormatCurrency(r.Goal.FutureDesiredAnnualIncome), FormatCurrency(r.NetWorth.NetWorth))
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (success %s, Δ %s / %s vs goal)\n",
			rec.ScenarioName, FormatPercentage(rec.SuccessRate), FormatCurrency(rec.IncomeVsGoal), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
