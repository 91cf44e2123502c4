package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// Theme colors
var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	goodStyle = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// ConsoleFormatter renders the detailed console report as styled tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, renderTitle("RETIREMENT PROJECTION"))
	if !results.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated %s\n", results.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, headerStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range scenarioAssumptions(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sc := range results.Scenarios {
		title := fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Name)
		fmt.Fprintln(&buf, headerStyle.Render(title))
		fmt.Fprintln(&buf, strings.Repeat("=", lipgloss.Width(title)))
		if sc.Result == nil {
			fmt.Fprintln(&buf, "  (no result)")
			fmt.Fprintln(&buf)
			continue
		}
		writeScenario(&buf, sc.Result)
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" && len(results.Scenarios) > 1 {
		fmt.Fprintln(&buf, headerStyle.Render("SUMMARY & RECOMMENDATIONS"))
		fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
		fmt.Fprintf(&buf, "Success rate: %s\n", FormatPercentage(rec.SuccessRate))
		fmt.Fprintf(&buf, "Income vs goal: %s (%s)\n", FormatMoney(rec.IncomeVsGoal), FormatPercentage(rec.PercentageChange))
	}

	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, r *domain.ProjectionResult) {
	goal := "n/a"
	if r.Goal.Applicable {
		goal = badStyle.Render("shortfall " + FormatMoney(r.Goal.Shortfall))
		if r.Goal.OnTrack {
			goal = goodStyle.Render("on track")
		}
	}
	success := "N/A"
	if r.MonteCarlo.Applicable {
		success = FormatPercentage(r.MonteCarlo.SuccessRate)
	}

	fmt.Fprintln(buf, renderTable("Overview", []string{"Metric", "Value"}, [][]string{
		{"Years to retirement", intToString(r.YearsToRetirement)},
		{"Retirement year", intToString(r.RetirementYear)},
		{"Withdrawal pool (Roth)", FormatMoney(r.Pools.Roth)},
		{"Withdrawal pool (non-Roth)", FormatMoney(r.Pools.NonRoth)},
		{"Withdrawal pool (total)", FormatMoney(r.Pools.Total)},
		{"Estimated monthly withdrawal", FormatMoney(r.EstimatedMonthlyWithdrawal)},
		{"Social Security (monthly)", FormatMoney(r.SocialSecurity.TotalMonthly)},
		{"Rental net cash flow (monthly)", FormatMoney(r.RentalTotals.NetCashFlow)},
		{"Fixed distributions (monthly)", FormatMoney(r.FixedIncome.FromHoldingsMonthly)},
		{"Final monthly income", FormatMoney(r.FinalMonthlyIncome)},
		{"Final annual income", FormatMoney(r.FinalAnnualIncome)},
		{"Income goal at retirement", FormatMoney(r.Goal.FutureDesiredAnnualIncome)},
		{"Goal status", goal},
		{"Net worth today", FormatMoney(r.NetWorth.NetWorth)},
		{"Monthly budget net savings", FormatMoney(r.Budget.NetSavings)},
		{"Portfolio longevity", FormatLongevity(r.PortfolioLongevity)},
		{"Holistic longevity", FormatLongevity(r.HolisticLongevity)},
		{"Monte Carlo success", success},
	}))

	holdings := append(append([]domain.HoldingProjection(nil), r.MainHoldings...), r.OtherHoldings...)
	if len(holdings) > 0 {
		rows := lo.Map(holdings, func(h domain.HoldingProjection, _ int) []string {
			return []string{h.Holder, h.AccountType, string(h.Treatment), FormatMoney(h.CurrentValue), FormatMoney(h.ProjectedValue), boolToString(h.IsRoth)}
		})
		fmt.Fprintln(buf, renderTable("Holdings", []string{"Holder", "Account", "Treatment", "Current", "Projected", "Roth"}, rows))
	}

	if len(r.Rentals) > 0 {
		rows := lo.Map(r.Rentals, func(m domain.RentalMetrics, _ int) []string {
			return []string{m.Address, FormatMoney(m.EstimatedValue), FormatMoney(m.LoanBalance), FormatMoney(m.Equity), FormatMoney(m.NetCashFlow), FormatMoney(m.NetProceedsIfSold)}
		})
		fmt.Fprintln(buf, renderTable("Rentals", []string{"Address", "Value", "Loan", "Equity", "Cash flow", "Net if sold"}, rows))
	}

	if len(r.Timeline) > 0 {
		rows := lo.Map(r.Timeline, func(row domain.IncomeTimelineRow, _ int) []string {
			return []string{
				fmt.Sprintf("%d / %d", row.Age1, row.Age2),
				strings.Join(row.Triggers, ", "),
				FormatMoney(row.PortfolioWithdrawal),
				FormatMoney(row.Person1SocialSecurity),
				FormatMoney(row.Person2SocialSecurity),
				FormatMoney(row.Rental),
				FormatMoney(row.OtherFixed),
				FormatMoney(row.TotalMonthly),
			}
		})
		fmt.Fprintln(buf, renderTable("Monthly income timeline", []string{"Ages", "Events", "Portfolio", "SS 1", "SS 2", "Rental", "Other", "Total"}, rows))
	}

	if r.MonteCarlo.Applicable {
		fmt.Fprintln(buf, renderTable("Ending balance percentiles", []string{"P10", "P50", "P90", "Trials"}, [][]string{
			{FormatMoney(r.MonteCarlo.P10), FormatMoney(r.MonteCarlo.P50), FormatMoney(r.MonteCarlo.P90), intToString(r.MonteCarlo.Trials)},
		}))
	}
	fmt.Fprintln(buf)
}

// renderTitle renders a centered title bar in a bordered box.
func renderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// renderTable renders a bordered table with headers and rows. Every column
// but the first is right-aligned.
func renderTable(title string, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	return "  " + headerStyle.Render(title) + "\n" + t.Render()
}
