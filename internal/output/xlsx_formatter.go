package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// Workbook sheet names.
const (
	SheetSummary     = "Summary"
	SheetHoldings    = "Holdings"
	SheetTimeline    = "Timeline"
	SheetPercentiles = "Percentiles"
)

// XLSXFormatter writes the comparison as an Excel workbook with one sheet per table.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	scenarios := sortedScenarios(results)
	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, buildSummarySheet(scenarios)},
		{SheetHoldings, buildHoldingsSheet(scenarios)},
		{SheetTimeline, buildTimelineSheet(scenarios)},
		{SheetPercentiles, buildPercentilesSheet(scenarios)},
	}

	boldID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return nil, fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", sheet.name, err)
		}
		if err := writeSheetRows(f, sheet.name, sheet.rows); err != nil {
			return nil, err
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.rows[0]), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet.name, "A1", last, boldID); err != nil {
			return nil, fmt.Errorf("styling %s header: %w", sheet.name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// buildSummarySheet builds one row of headline numbers per scenario.
func buildSummarySheet(scenarios []domain.ScenarioResult) [][]any {
	data := [][]any{{
		"Scenario", "Retirement Year", "Total Pool", "Roth Pool", "Non-Roth Pool",
		"Est. Monthly Withdrawal", "Final Monthly Income", "Final Annual Income",
		"Income Goal", "On Track", "Net Worth", "Monthly Net Savings", "Portfolio Longevity", "Holistic Longevity",
		"Success Rate", "P10", "P50", "P90",
	}}
	for _, sc := range scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		var success any
		if r.MonteCarlo.Applicable {
			success = toFloat(r.MonteCarlo.SuccessRate)
		}
		data = append(data, []any{
			sc.Name, r.RetirementYear,
			toFloat(r.Pools.Total), toFloat(r.Pools.Roth), toFloat(r.Pools.NonRoth),
			toFloat(r.EstimatedMonthlyWithdrawal), toFloat(r.FinalMonthlyIncome), toFloat(r.FinalAnnualIncome),
			toFloat(r.Goal.FutureDesiredAnnualIncome), r.Goal.OnTrack, toFloat(r.NetWorth.NetWorth), toFloat(r.Budget.NetSavings),
			r.PortfolioLongevity.String(), r.HolisticLongevity.String(),
			success, toFloat(r.MonteCarlo.P10), toFloat(r.MonteCarlo.P50), toFloat(r.MonteCarlo.P90),
		})
	}
	return data
}

// buildHoldingsSheet lists every main and other holding with its projection.
func buildHoldingsSheet(scenarios []domain.ScenarioResult) [][]any {
	data := [][]any{{"Scenario", "Group", "Holder", "Account Type", "Description", "Treatment", "Current Value", "Projected Value", "Net Return", "Roth"}}
	for _, sc := range scenarios {
		if sc.Result == nil {
			continue
		}
		add := func(group string, list []domain.HoldingProjection) {
			for _, h := range list {
				data = append(data, []any{
					sc.Name, group, h.Holder, h.AccountType, h.Description, string(h.Treatment),
					toFloat(h.CurrentValue), toFloat(h.ProjectedValue), toFloat(h.NetReturn), h.IsRoth,
				})
			}
		}
		add("main", sc.Result.MainHoldings)
		add("other", sc.Result.OtherHoldings)
	}
	return data
}

// buildTimelineSheet lists the monthly income rows.
func buildTimelineSheet(scenarios []domain.ScenarioResult) [][]any {
	data := [][]any{{"Scenario", "Age 1", "Age 2", "Events", "Portfolio", "Person 1 SS", "Person 2 SS", "Rental", "Other Fixed", "Total Monthly", "Total Annual"}}
	for _, sc := range scenarios {
		if sc.Result == nil {
			continue
		}
		for _, row := range sc.Result.Timeline {
			data = append(data, []any{
				sc.Name, row.Age1, row.Age2, strings.Join(row.Triggers, ", "),
				toFloat(row.PortfolioWithdrawal), toFloat(row.Person1SocialSecurity), toFloat(row.Person2SocialSecurity),
				toFloat(row.Rental), toFloat(row.OtherFixed), toFloat(row.TotalMonthly), toFloat(row.TotalAnnual),
			})
		}
	}
	return data
}

// buildPercentilesSheet lists the year-by-year balance bands.
func buildPercentilesSheet(scenarios []domain.ScenarioResult) [][]any {
	data := [][]any{{"Scenario", "Year", "Calendar Year", "P10", "P50", "P90"}}
	for _, sc := range scenarios {
		if sc.Result == nil {
			continue
		}
		for _, b := range sc.Result.PercentileSeries.Bands {
			data = append(data, []any{sc.Name, b.Year, b.CalendarYear, toFloat(b.P10), toFloat(b.P50), toFloat(b.P90)})
		}
	}
	return data
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
