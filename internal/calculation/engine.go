package calculation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/pkg/dateutil"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// ErrNilSnapshot is returned when RunScenario is called without input.
var ErrNilSnapshot = errors.New("snapshot is nil")

// CalculationEngine orchestrates all retirement calculations
type CalculationEngine struct {
	SSCalc    *SocialSecurityCalculator
	Simulator *DepletionSimulator
	Settings  Settings
	Now       func() time.Time
	Logger    Logger
}

// NewCalculationEngine creates a new calculation engine with default settings
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithSettings(DefaultSettings())
}

// NewCalculationEngineWithSettings creates a calculation engine with explicit simulation settings
func NewCalculationEngineWithSettings(settings Settings) *CalculationEngine {
	settings = settings.withDefaults()
	return &CalculationEngine{
		SSCalc:    NewSocialSecurityCalculator(),
		Simulator: NewDepletionSimulator(settings),
		Settings:  settings,
		Now:       nowFunc,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.SSCalc.Logger = l
	ce.Simulator.Logger = l
}

// eventCeiling is the last calendar year an Annual life event repeats through.
func (ce *CalculationEngine) eventCeiling(retirementYear, horizon int) int {
	if ce.Settings.EventCeiling > 0 {
		return ce.Settings.EventCeiling
	}
	return dateutil.CalendarYear(retirementYear, max(horizon, ce.Settings.LongevityCap))
}

// RunScenario runs every component over one snapshot. Numeric problems in the
// snapshot never produce an error; only cancellation of ctx does.
func (ce *CalculationEngine) RunScenario(ctx context.Context, snap *domain.Snapshot) (*domain.ProjectionResult, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	pi := snap.PersonalInfo
	a := snap.Assumptions

	years := dateutil.YearsToRetirement(int(pi.RetirementAge), int(pi.CurrentAge1), int(pi.CurrentAge2))
	retirementYear := dateutil.RetirementYear(ce.Now(), years)
	ce.Logger.Debugf("scenario %q: %d years to retirement (%d)", snap.Name, years, retirementYear)

	result := &domain.ProjectionResult{
		YearsToRetirement: years,
		RetirementYear:    retirementYear,
		MainHoldings:      ProjectHoldings(snap.MainInvestments, years),
		OtherHoldings:     ProjectHoldings(snap.OtherInvestments, years),
	}

	pools, holdingsMonthly := RoutePools(result.MainHoldings, result.OtherHoldings)
	result.Pools = pools

	result.SocialSecurity = ce.SSCalc.CalculateBenefits(BenefitInputs{
		Person1FRA:      snap.SocialSecurity.Person1FRABenefit.Decimal,
		Person2FRA:      snap.SocialSecurity.Person2FRABenefit.Decimal,
		Person1ClaimAge: int(snap.SocialSecurity.Person1StartAge),
		Person2ClaimAge: int(snap.SocialSecurity.Person2StartAge),
	})

	result.Rentals = lo.Map(snap.Rentals, func(p domain.RentalProperty, _ int) domain.RentalMetrics {
		return CalculateRentalMetrics(p, a.RentalSellingCost)
	})
	result.RentalTotals = SummarizeRentals(result.Rentals)

	fixedMonthly := holdingsMonthly.Add(result.RentalTotals.NetCashFlow).Add(result.SocialSecurity.TotalMonthly)
	result.FixedIncome = domain.FixedIncome{
		FromHoldingsMonthly:   holdingsMonthly,
		RentalMonthly:         result.RentalTotals.NetCashFlow,
		SocialSecurityMonthly: result.SocialSecurity.TotalMonthly,
		TotalMonthly:          fixedMonthly,
		TotalAnnual:           dec.NewMoneyFromDecimal(fixedMonthly).Annual().Decimal,
	}

	result.EstimatedMonthlyWithdrawal = EstimateMonthlyWithdrawal(pools, a.WithdrawalRate, a.TaxRateNonRoth)
	result.Timeline, result.FinalMonthlyIncome = ComposeIncomeTimeline(TimelineInputs{
		RetirementAge:              int(pi.RetirementAge),
		CurrentAge1:                int(pi.CurrentAge1),
		CurrentAge2:                int(pi.CurrentAge2),
		Person1ClaimAge:            int(snap.SocialSecurity.Person1StartAge),
		Person2ClaimAge:            int(snap.SocialSecurity.Person2StartAge),
		Person1Monthly:             result.SocialSecurity.Person1Monthly,
		Person2Monthly:             result.SocialSecurity.Person2Monthly,
		PortfolioWithdrawalMonthly: result.EstimatedMonthlyWithdrawal,
		RentalMonthly:              result.RentalTotals.NetCashFlow,
		OtherFixedMonthly:          holdingsMonthly,
	})
	result.FinalAnnualIncome = dec.NewMoneyFromDecimal(result.FinalMonthlyIncome).Annual().Decimal

	inflation := a.InflationRate.Rate()
	initialExpense := a.DesiredRetirementIncomeToday.NonNegative().Mul(dec.Compound(inflation, years))
	result.Budget = AnalyzeBudget(snap.Income, snap.Expenses)
	result.Goal = AnalyzeGoal(initialExpense, result.FinalAnnualIncome)
	result.NetWorth = AnalyzeNetWorth(NetWorthInputs{Snapshot: snap, Pools: pools, RentalTotals: result.RentalTotals})

	// Social Security joins the simulated years from each claim age on.
	baseMonthly := holdingsMonthly.Add(result.RentalTotals.NetCashFlow)
	params := SimulationParams{
		StartingBalance:      pools.Total,
		InitialAnnualExpense: initialExpense,
		FixedAnnualIncome:    dec.NewMoneyFromDecimal(baseMonthly).Annual().Decimal,
		Streams:              socialSecurityStreams(pi, years, snap.SocialSecurity, result.SocialSecurity),
		InflationRate:        inflation,
		MeanReturn:           a.PostRetirementReturn.Rate(),
		StdDev:               a.PostRetirementStdDev.Rate(),
		HorizonYears:         int(a.SimulationYears),
		RetirementYear:       retirementYear,
		Events:               ProjectLifeEvents(snap.LifeEvents, retirementYear, ce.eventCeiling(retirementYear, int(a.SimulationYears))),
	}
	holistic := params
	holistic.StartingBalance = result.NetWorth.HolisticStartingBalance

	result.Simulation = domain.SimulationInputs{
		StartingBalance:      params.StartingBalance,
		HolisticBalance:      holistic.StartingBalance,
		InitialAnnualExpense: params.InitialAnnualExpense,
		FixedAnnualIncome:    params.FixedAnnualIncome,
		InflationRate:        params.InflationRate,
		MeanReturn:           params.MeanReturn,
		StdDev:               params.StdDev,
		HorizonYears:         params.HorizonYears,
		IncomeStreams:        params.Streams,
	}
	result.PortfolioLongevity = ce.Simulator.Deterministic(params)
	result.HolisticLongevity = ce.Simulator.Deterministic(holistic)

	var err error
	if result.MonteCarlo, err = ce.Simulator.MonteCarlo(ctx, params); err != nil {
		return nil, fmt.Errorf("monte carlo for scenario %q: %w", snap.Name, err)
	}
	if result.PercentileSeries, err = ce.Simulator.MonteCarloSeries(ctx, params); err != nil {
		return nil, fmt.Errorf("percentile series for scenario %q: %w", snap.Name, err)
	}

	result.ProjectionSeries = ProjectionSeries(PortfolioHoldings(snap.MainInvestments, snap.OtherInvestments), years)

	ce.Logger.Infof("scenario %q: pool %s, final monthly income %s, longevity %s",
		snap.Name, pools.Total.StringFixed(2), result.FinalMonthlyIncome.StringFixed(2), result.PortfolioLongevity)
	return result, nil
}

// socialSecurityStreams places each elected benefit in the simulated year the
// person reaches their claim age. A benefit claimed at or before retirement
// starts in year 1. Zero benefits and a missing person 2 produce no stream.
func socialSecurityStreams(pi domain.PersonalInfo, years int, ss domain.SocialSecurity, benefits domain.SocialSecurityResult) []domain.IncomeStream {
	var streams []domain.IncomeStream
	add := func(label string, currentAge, claimAge dec.Int, monthly decimal.Decimal) {
		if currentAge <= 0 || claimAge <= 0 || !monthly.IsPositive() {
			return
		}
		start := max(1, int(claimAge-currentAge)-years+1)
		streams = append(streams, domain.IncomeStream{
			Label:     label,
			StartYear: start,
			Annual:    dec.NewMoneyFromDecimal(monthly).Annual().Decimal,
		})
	}
	add(TriggerPerson1Social, pi.CurrentAge1, ss.Person1StartAge, benefits.Person1Monthly)
	add(TriggerPerson2Social, pi.CurrentAge2, ss.Person2StartAge, benefits.Person2Monthly)
	return streams
}

// RunScenarios runs each snapshot in order and collects the results for comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, snaps []domain.Snapshot) (*domain.ScenarioComparison, error) {
	comparison := &domain.ScenarioComparison{
		GeneratedAt: ce.Now(),
		Scenarios:   make([]domain.ScenarioResult, 0, len(snaps)),
	}
	for i := range snaps {
		name := snaps[i].Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		result, err := ce.RunScenario(ctx, &snaps[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		comparison.Scenarios = append(comparison.Scenarios, domain.ScenarioResult{Name: name, Result: result})
	}
	return comparison, nil
}
