package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "YearsToRetirement", "RetirementYear", "RothPool", "NonRothPool", "TotalPool", "EstimatedMonthlyWithdrawal", "SocialSecurityMonthly", "RentalNetCashFlow", "FinalMonthlyIncome", "FinalAnnualIncome", "FutureDesiredAnnualIncome", "OnTrack", "NetWorth", "PortfolioLongevity", "HolisticLongevity", "SuccessRate", "P10", "P50", "P90"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		r := sc.Result
		if r == nil {
			continue
		}
		success := ""
		if r.MonteCarlo.Applicable {
			success = r.MonteCarlo.SuccessRate.StringFixed(2)
		}
		row := []string{
			sc.Name,
			intToString(r.YearsToRetirement),
			intToString(r.RetirementYear),
			r.Pools.Roth.StringFixed(2),
			r.Pools.NonRoth.StringFixed(2),
			r.Pools.Total.StringFixed(2),
			r.EstimatedMonthlyWithdrawal.StringFixed(2),
			r.SocialSecurity.TotalMonthly.StringFixed(2),
			r.RentalTotals.NetCashFlow.StringFixed(2),
			r.FinalMonthlyIncome.StringFixed(2),
			r.FinalAnnualIncome.StringFixed(2),
			r.Goal.FutureDesiredAnnualIncome.StringFixed(2),
			boolToString(r.Goal.OnTrack),
			r.NetWorth.NetWorth.StringFixed(2),
			r.PortfolioLongevity.String(),
			r.HolisticLongevity.String(),
			success,
			r.MonteCarlo.P10.StringFixed(2),
			r.MonteCarlo.P50.StringFixed(2),
			r.MonteCarlo.P90.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
