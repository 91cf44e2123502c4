package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

func testEngine() *CalculationEngine {
	ce := NewCalculationEngineWithSettings(Settings{SummaryTrials: 100, SeriesTrials: 20, Workers: 4, Seed: 99})
	ce.Now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return ce
}

func householdSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Name:         "Base Case",
		PersonalInfo: domain.PersonalInfo{CurrentAge1: 50, CurrentAge2: 49, RetirementAge: 65},
		MainInvestments: []domain.Holding{
			{Holder: "Person 1", AccountType: "Roth IRA", CurrentValue: dec.NewMoney(108301.57), MonthlyContribution: dec.NewMoney(666.67), ExpectedReturn: dec.NewPercent(8), ExpenseRatio: dec.NewPercent(0.08), StdDev: dec.NewPercent(12)},
			{Holder: "Person 1", AccountType: "401(k)", CurrentValue: dec.NewMoney(43485.69), MonthlyContribution: dec.NewMoney(582.39), ExpectedReturn: dec.NewPercent(8), ExpenseRatio: dec.NewPercent(0.02), StdDev: dec.NewPercent(10)},
		},
		OtherInvestments: []domain.Holding{
			{Holder: "Joint", AccountType: "Alternative Investment", CurrentValue: dec.NewMoney(75000), ExpectedReturn: dec.NewPercent(10), Treatment: domain.TreatmentFixedPercent, Notes: "10"},
			{Holder: "Person 1", AccountType: "Insurance / Annuity", CurrentValue: dec.NewMoney(52090.19), Treatment: domain.TreatmentLumpSum},
		},
		SocialSecurity: domain.SocialSecurity{
			Person1FRABenefit: dec.NewMoney(2516),
			Person1StartAge:   67,
			Person2StartAge:   67,
		},
		Rentals: sampleRentals(),
		LifeEvents: []domain.LifeEvent{
			{Year: 2045, Type: domain.EventExpense, Amount: dec.NewMoney(25000), Frequency: domain.FrequencyOneTime, Description: "New car"},
		},
		Income:   []domain.IncomeItem{{Description: "Salary", Amount: dec.NewMoney(5441.64)}},
		Expenses: []domain.ExpenseItem{{Category: "Housing", Amount: dec.NewMoney(1551.38)}, {Category: "Food", Amount: dec.NewMoney(900)}},
		Assets:   []domain.OtherAsset{{Type: "Cash", Value: dec.NewMoney(108486.17)}},
		Assumptions: domain.Assumptions{
			InflationRate:                dec.NewPercent(3),
			PostRetirementReturn:         dec.NewPercent(4),
			PostRetirementStdDev:         dec.NewPercent(8),
			SimulationYears:              30,
			DesiredRetirementIncomeToday: dec.NewMoney(80000),
			WithdrawalRate:               dec.NewPercent(4),
			TaxRateNonRoth:               dec.NewPercent(12),
			RentalSellingCost:            dec.NewPercent(6),
		},
	}
}

func TestRunScenario_Household(t *testing.T) {
	ce := testEngine()
	snap := householdSnapshot()

	res, err := ce.RunScenario(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, 15, res.YearsToRetirement)
	assert.Equal(t, 2040, res.RetirementYear)
	require.Len(t, res.MainHoldings, 2)
	require.Len(t, res.OtherHoldings, 2)
	assert.True(t, res.Pools.Total.Equal(res.Pools.MainProjectedTotal), "other holdings are not portfolio-routed")
	assert.True(t, res.Pools.Roth.Equal(res.MainHoldings[0].ProjectedValue))

	// 10% of the projected fund value per year
	expectedFixed := res.OtherHoldings[0].ProjectedValue.Div(d("120"))
	assert.True(t, res.FixedIncome.FromHoldingsMonthly.Equal(expectedFixed))
	assert.True(t, res.FixedIncome.RentalMonthly.Equal(d("1050")))
	assert.True(t, res.SocialSecurity.TotalMonthly.Equal(d("3774")))

	require.Len(t, res.Timeline, 3)
	assert.True(t, res.FinalMonthlyIncome.Equal(res.Timeline[2].TotalMonthly))
	assert.True(t, res.FinalAnnualIncome.Equal(res.FinalMonthlyIncome.Mul(d("12"))))

	assert.True(t, res.Budget.TotalIncome.Equal(d("5441.64")))
	assert.True(t, res.Budget.NetSavings.Equal(d("2990.26")))

	assert.True(t, res.Goal.Applicable)
	assert.InDelta(t, 124637.39, res.Goal.FutureDesiredAnnualIncome.InexactFloat64(), 0.01)

	assert.True(t, res.NetWorth.HolisticStartingBalance.GreaterThan(res.Pools.Total))
	assert.NotEqual(t, domain.LongevityNotApplicable, res.PortfolioLongevity.Status)
	assert.NotEqual(t, domain.LongevityNotApplicable, res.HolisticLongevity.Status)

	assert.True(t, res.MonteCarlo.Applicable)
	assert.Equal(t, 100, res.MonteCarlo.Trials)
	assert.True(t, res.PercentileSeries.Applicable)
	assert.Len(t, res.PercentileSeries.Bands, 31)
	assert.Len(t, res.ProjectionSeries, 16)

	assert.Equal(t, householdSnapshot(), snap, "the snapshot is not modified")
}

func TestRunScenario_FlatDepletion(t *testing.T) {
	snap := &domain.Snapshot{
		PersonalInfo:    domain.PersonalInfo{CurrentAge1: 65, CurrentAge2: 65, RetirementAge: 65},
		MainInvestments: []domain.Holding{{AccountType: "Brokerage", CurrentValue: dec.NewMoney(1000000)}},
		Assumptions: domain.Assumptions{
			SimulationYears:              30,
			DesiredRetirementIncomeToday: dec.NewMoney(40000),
		},
	}

	res, err := testEngine().RunScenario(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, 0, res.YearsToRetirement)
	assert.Equal(t, "25", res.PortfolioLongevity.String())
	assert.Equal(t, "25", res.HolisticLongevity.String())
	assert.True(t, res.MonteCarlo.SuccessRate.IsZero())
}

func TestRunScenario_DeferredSocialSecurity(t *testing.T) {
	snap := &domain.Snapshot{
		PersonalInfo:    domain.PersonalInfo{CurrentAge1: 55, RetirementAge: 55},
		MainInvestments: []domain.Holding{{AccountType: "Brokerage", CurrentValue: dec.NewMoney(300000)}},
		SocialSecurity:  domain.SocialSecurity{Person1FRABenefit: dec.NewMoney(3000), Person1StartAge: 70},
		Assumptions: domain.Assumptions{
			SimulationYears:              30,
			DesiredRetirementIncomeToday: dec.NewMoney(40000),
		},
	}

	res, err := testEngine().RunScenario(context.Background(), snap)
	require.NoError(t, err)

	assert.True(t, res.SocialSecurity.Person1Monthly.Equal(d("3720")))
	assert.True(t, res.Simulation.FixedAnnualIncome.IsZero(), "benefits are not received from year 1")
	require.Len(t, res.Simulation.IncomeStreams, 1)
	assert.Equal(t, 16, res.Simulation.IncomeStreams[0].StartYear)
	assert.True(t, res.Simulation.IncomeStreams[0].Annual.Equal(d("44640")))

	// 300k at 40k a year runs out before the benefit starts at 70
	require.Equal(t, domain.LongevityDepleted, res.PortfolioLongevity.Status)
	assert.Equal(t, 8, res.PortfolioLongevity.Years)
}

func TestSocialSecurityStreams(t *testing.T) {
	pi := domain.PersonalInfo{CurrentAge1: 50, CurrentAge2: 58, RetirementAge: 60}
	ss := domain.SocialSecurity{Person1StartAge: 67, Person2StartAge: 62}
	benefits := domain.SocialSecurityResult{Person1Monthly: d("2000"), Person2Monthly: d("1000")}

	// oldest member reaches 60 in 2 years; person 1 is then 52 and person 2 is 60
	streams := socialSecurityStreams(pi, 2, ss, benefits)
	require.Len(t, streams, 2)
	assert.Equal(t, 16, streams[0].StartYear)
	assert.True(t, streams[0].Annual.Equal(d("24000")))
	assert.Equal(t, 3, streams[1].StartYear)

	ss.Person2StartAge = 55 // already claimed
	streams = socialSecurityStreams(pi, 2, ss, benefits)
	assert.Equal(t, 1, streams[1].StartYear)

	pi.CurrentAge2 = 0
	assert.Len(t, socialSecurityStreams(pi, 2, ss, benefits), 1)

	assert.Empty(t, socialSecurityStreams(pi, 2, ss, domain.SocialSecurityResult{}))
}

func TestRunScenario_EmptySnapshot(t *testing.T) {
	res, err := testEngine().RunScenario(context.Background(), &domain.Snapshot{})
	require.NoError(t, err)

	assert.Equal(t, domain.LongevityNotApplicable, res.PortfolioLongevity.Status)
	assert.Equal(t, domain.LongevityNotApplicable, res.HolisticLongevity.Status)
	assert.False(t, res.MonteCarlo.Applicable)
	assert.False(t, res.PercentileSeries.Applicable)
	assert.False(t, res.Goal.Applicable)
	assert.Empty(t, res.Timeline)
	assert.True(t, res.FinalMonthlyIncome.IsZero())
}

func TestRunScenario_Errors(t *testing.T) {
	_, err := testEngine().RunScenario(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilSnapshot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = testEngine().RunScenario(ctx, householdSnapshot())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenarios(t *testing.T) {
	early := *householdSnapshot()
	early.Name = ""
	early.PersonalInfo.RetirementAge = 62

	comparison, err := testEngine().RunScenarios(context.Background(), []domain.Snapshot{*householdSnapshot(), early})
	require.NoError(t, err)
	require.Len(t, comparison.Scenarios, 2)
	assert.Equal(t, "Base Case", comparison.Scenarios[0].Name)
	assert.Equal(t, "Scenario 2", comparison.Scenarios[1].Name)
	assert.Equal(t, 12, comparison.Scenarios[1].Result.YearsToRetirement)
	assert.Equal(t, 2025, comparison.GeneratedAt.Year())
}

func TestEventCeiling(t *testing.T) {
	ce := testEngine()
	assert.Equal(t, 2139, ce.eventCeiling(2040, 30))
	assert.Equal(t, 2189, ce.eventCeiling(2040, 150))

	ce.Settings.EventCeiling = 2070
	assert.Equal(t, 2070, ce.eventCeiling(2040, 30))
}
