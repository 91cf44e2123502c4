package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/pkg/dateutil"
)

// Simulation defaults.
const (
	DefaultSummaryTrials = 1000
	DefaultSeriesTrials  = 100
	DefaultLongevityCap  = 100
	DefaultHistogramBins = 20
	DefaultWorkers       = 10
)

// balanceScale bounds the decimal places carried between simulated years.
const balanceScale = 10

// Settings tunes the depletion simulator. Zero values fall back to the defaults.
type Settings struct {
	SummaryTrials int
	SeriesTrials  int
	LongevityCap  int
	HistogramBins int
	Workers       int
	Seed          int64
	Timeout       time.Duration
	EventCeiling  int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		SummaryTrials: DefaultSummaryTrials,
		SeriesTrials:  DefaultSeriesTrials,
		LongevityCap:  DefaultLongevityCap,
		HistogramBins: DefaultHistogramBins,
		Workers:       DefaultWorkers,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.SummaryTrials <= 0 {
		s.SummaryTrials = d.SummaryTrials
	}
	if s.SeriesTrials <= 0 {
		s.SeriesTrials = d.SeriesTrials
	}
	if s.LongevityCap <= 0 {
		s.LongevityCap = d.LongevityCap
	}
	if s.HistogramBins <= 0 {
		s.HistogramBins = d.HistogramBins
	}
	if s.Workers <= 0 {
		s.Workers = d.Workers
	}
	return s
}

// SimulationParams is one retirement to simulate. Rates are fractions.
// FixedAnnualIncome is received from year 1; each of Streams is added from
// its StartYear on.
type SimulationParams struct {
	StartingBalance      decimal.Decimal
	InitialAnnualExpense decimal.Decimal
	FixedAnnualIncome    decimal.Decimal
	Streams              []domain.IncomeStream
	InflationRate        decimal.Decimal
	MeanReturn           decimal.Decimal
	StdDev               decimal.Decimal
	HorizonYears         int
	RetirementYear       int
	Events               EventMap
}

// DepletionSimulator runs the year-by-year withdrawal recurrence.
type DepletionSimulator struct {
	Settings     Settings
	NewGenerator GeneratorFactory
	Logger       Logger
}

// NewDepletionSimulator creates a simulator with defaults filled in.
func NewDepletionSimulator(settings Settings) *DepletionSimulator {
	return &DepletionSimulator{
		Settings:     settings.withDefaults(),
		NewGenerator: NewBoxMuller,
		Logger:       NopLogger{},
	}
}

// pathOutcome is the result of simulating one path.
type pathOutcome struct {
	depleted bool
	years    int
	ending   decimal.Decimal
	balances []decimal.Decimal
}

// fixedIncomeAt returns the fixed income received in simulated year y.
func (p SimulationParams) fixedIncomeAt(y int) decimal.Decimal {
	total := p.FixedAnnualIncome
	for _, s := range p.Streams {
		if y >= s.StartYear {
			total = total.Add(s.Annual)
		}
	}
	return total
}

// applicable reports whether the inputs describe a retirement worth simulating
// over years. A missing balance or a negative expense never is; a zero expense
// only is when some life event changes a withdrawal within the window.
func (p SimulationParams) applicable(years int) bool {
	if !p.StartingBalance.IsPositive() || p.InitialAnnualExpense.IsNegative() || years <= 0 {
		return false
	}
	if p.InitialAnnualExpense.IsZero() {
		last := dateutil.CalendarYear(p.RetirementYear, years)
		return p.Events.AnyIn(p.RetirementYear, last, func(v decimal.Decimal) bool { return !v.IsZero() })
	}
	return true
}

// runPath simulates up to years of retirement. nextReturn supplies each year's
// return. When record is set the end-of-year balances are kept, with zeros
// after depletion.
func runPath(p SimulationParams, years int, nextReturn func() decimal.Decimal, record bool) pathOutcome {
	one := decimal.NewFromInt(1)
	balance := p.StartingBalance
	expense := p.InitialAnnualExpense
	inflation := one.Add(p.InflationRate)

	out := pathOutcome{}
	if record {
		out.balances = make([]decimal.Decimal, years)
	}

	for y := 1; y <= years; y++ {
		adj := p.Events.At(dateutil.CalendarYear(p.RetirementYear, y))
		withdrawal := decimal.Max(decimal.Zero, expense.Sub(p.fixedIncomeAt(y)).Add(adj))

		balance = balance.Mul(one.Add(nextReturn())).Sub(withdrawal).Round(balanceScale)
		if !balance.IsPositive() {
			out.depleted = true
			out.years = y
			out.ending = decimal.Zero
			return out
		}
		if record {
			out.balances[y-1] = balance
		}
		expense = expense.Mul(inflation).Round(balanceScale)
	}

	out.years = years
	out.ending = balance
	return out
}
