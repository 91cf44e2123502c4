package output

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
)

func dd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func buildResult(pool, finalMonthly, success int64, longevity domain.Longevity) *domain.ProjectionResult {
	return &domain.ProjectionResult{
		YearsToRetirement: 15,
		RetirementYear:    2040,
		MainHoldings: []domain.HoldingProjection{
			{Holder: "Person 1", AccountType: "Roth IRA", CurrentValue: dd(100000), ProjectedValue: dd(pool), IsRoth: true, Treatment: domain.TreatmentPortfolio},
		},
		OtherHoldings: []domain.HoldingProjection{
			{Holder: "Joint", AccountType: "Fund", CurrentValue: dd(75000), ProjectedValue: dd(150000), Treatment: domain.TreatmentLumpSum},
		},
		Pools:                      domain.Pools{Roth: dd(pool), Total: dd(pool)},
		EstimatedMonthlyWithdrawal: dd(pool).Mul(decimal.RequireFromString("0.04")).Div(dd(12)).Round(2),
		Rentals: []domain.RentalMetrics{
			{Address: "123 Main St", EstimatedValue: dd(85000), Equity: dd(85000), NetCashFlow: dd(600), NetProceedsIfSold: dd(79900)},
		},
		RentalTotals: domain.RentalTotals{Count: 1, NetCashFlow: dd(600)},
		Timeline: []domain.IncomeTimelineRow{
			{Age1: 65, Age2: 64, Triggers: []string{"Retirement"}, PortfolioWithdrawal: dd(1000), Rental: dd(600), TotalMonthly: dd(1600), TotalAnnual: dd(19200)},
			{Age1: 67, Age2: 66, Triggers: []string{"Person 1 Social Security", "Person 2 Social Security"}, PortfolioWithdrawal: dd(1000), Person1SocialSecurity: dd(2516), Rental: dd(600), TotalMonthly: dd(finalMonthly), TotalAnnual: dd(finalMonthly * 12)},
		},
		FinalMonthlyIncome: dd(finalMonthly),
		FinalAnnualIncome:  dd(finalMonthly * 12),
		Goal: domain.Goal{
			Applicable:                true,
			FutureDesiredAnnualIncome: dd(100000),
			FinalAnnualIncome:         dd(finalMonthly * 12),
			OnTrack:                   finalMonthly*12 >= 100000,
			Shortfall:                 decimal.Max(decimal.Zero, dd(100000-finalMonthly*12)),
		},
		Budget:             domain.Budget{TotalIncome: dd(6500), TotalExpenses: dd(4000), NetSavings: dd(2500)},
		NetWorth:           domain.NetWorth{NetWorth: dd(500000)},
		Simulation:         domain.SimulationInputs{InflationRate: decimal.RequireFromString("0.03"), MeanReturn: decimal.RequireFromString("0.04"), StdDev: decimal.RequireFromString("0.08"), HorizonYears: 30},
		PortfolioLongevity: longevity,
		HolisticLongevity:  domain.Longevity{Status: domain.LongevityExceedsCap, Cap: 100},
		MonteCarlo: domain.MonteCarloSummary{
			Applicable: true, Trials: 1000, Seed: 42, SuccessRate: dd(success),
			P10: dd(0), P50: dd(250000), P90: dd(900000),
			Histogram: []domain.HistogramBin{{Lower: dd(0), Upper: dd(450000), Count: 600}, {Lower: dd(450000), Upper: dd(900000), Count: 400}},
		},
		PercentileSeries: domain.PercentileSeries{Applicable: true, Trials: 100, Bands: []domain.PercentileBand{
			{Year: 1, CalendarYear: 2040, P10: dd(400000), P50: dd(420000), P90: dd(440000)},
			{Year: 2, CalendarYear: 2041, P10: dd(380000), P50: dd(410000), P90: dd(450000)},
		}},
	}
}

func buildTestComparison() *domain.ScenarioComparison {
	return &domain.ScenarioComparison{
		GeneratedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Scenarios: []domain.ScenarioResult{
			{Name: "B", Result: buildResult(1200000, 9000, 93, domain.Longevity{Status: domain.LongevityExceedsCap, Cap: 100})},
			{Name: "A", Result: buildResult(800000, 7000, 71, domain.Longevity{Status: domain.LongevityDepleted, Years: 24, Cap: 100})},
		},
	}
}
