package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

func testSimulator() *DepletionSimulator {
	return NewDepletionSimulator(Settings{SummaryTrials: 200, SeriesTrials: 50, Workers: 4, Seed: 12345})
}

func flatParams(balance, expense int64) SimulationParams {
	return SimulationParams{
		StartingBalance:      decimal.NewFromInt(balance),
		InitialAnnualExpense: decimal.NewFromInt(expense),
		HorizonYears:         30,
		RetirementYear:       2040,
	}
}

func TestDeterministic_FlatWithdrawal(t *testing.T) {
	got := testSimulator().Deterministic(flatParams(1000000, 40000))
	assert.Equal(t, domain.LongevityDepleted, got.Status)
	assert.Equal(t, 25, got.Years)
	assert.Equal(t, "25", got.String())
}

func TestDeterministic_AnnualExpenseEvent(t *testing.T) {
	events := ProjectLifeEvents([]domain.LifeEvent{{
		Year:      2040,
		Type:      domain.EventExpense,
		Amount:    dec.NewMoney(10000),
		Frequency: domain.FrequencyAnnual,
	}}, 2040, 2139)

	p := flatParams(100000, 0)
	p.Events = events

	got := testSimulator().Deterministic(p)
	assert.Equal(t, domain.LongevityDepleted, got.Status)
	assert.Equal(t, 10, got.Years)
}

func TestDeterministic_IncomeStreamStartsLater(t *testing.T) {
	sim := testSimulator()

	p := flatParams(100000, 20000)
	assert.Equal(t, "5", sim.Deterministic(p).String())

	// three years of withdrawals, then the benefit covers the expense
	p.Streams = []domain.IncomeStream{{Label: "Person 1 Social Security", StartYear: 4, Annual: decimal.NewFromInt(20000)}}
	assert.Equal(t, domain.LongevityExceedsCap, sim.Deterministic(p).Status)

	p.Streams[0].StartYear = 6
	assert.Equal(t, "5", sim.Deterministic(p).String())

	assert.True(t, p.fixedIncomeAt(5).IsZero())
	assert.True(t, p.fixedIncomeAt(6).Equal(decimal.NewFromInt(20000)))
}

func TestDeterministic_NotApplicable(t *testing.T) {
	sim := testSimulator()
	tests := []struct {
		name string
		p    SimulationParams
	}{
		{"no balance", flatParams(0, 40000)},
		{"negative balance", flatParams(-10, 40000)},
		{"negative expense", flatParams(100000, -1)},
		{"zero expense and no events", flatParams(100000, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sim.Deterministic(tt.p)
			assert.Equal(t, domain.LongevityNotApplicable, got.Status)
			assert.Equal(t, "N/A", got.String())
		})
	}
}

func TestDeterministic_ExceedsCap(t *testing.T) {
	sim := testSimulator()

	covered := flatParams(500000, 40000)
	covered.FixedAnnualIncome = decimal.NewFromInt(50000)
	covered.MeanReturn = d("0.03")
	got := sim.Deterministic(covered)
	assert.Equal(t, domain.LongevityExceedsCap, got.Status)
	assert.Equal(t, "100+", got.String())

	growing := flatParams(2000000, 40000)
	growing.MeanReturn = d("0.05")
	assert.Equal(t, domain.LongevityExceedsCap, sim.Deterministic(growing).Status)
}

func TestDeterministic_InflationDefeatsFastPath(t *testing.T) {
	p := flatParams(100000, 40000)
	p.FixedAnnualIncome = decimal.NewFromInt(40000)
	p.InflationRate = d("0.03")

	got := testSimulator().Deterministic(p)
	require.Equal(t, domain.LongevityDepleted, got.Status)
	assert.Greater(t, got.Years, 1)
	assert.Less(t, got.Years, 100)
}

func TestDeterministic_MonotoneInBalance(t *testing.T) {
	sim := testSimulator()
	prev := 0
	for balance := int64(100000); balance <= 2000000; balance += 100000 {
		p := flatParams(balance, 60000)
		p.InflationRate = d("0.03")
		p.MeanReturn = d("0.04")
		p.FixedAnnualIncome = decimal.NewFromInt(10000)

		got := sim.Deterministic(p)
		years := got.Years
		if got.Status == domain.LongevityExceedsCap {
			years = got.Cap + 1
		}
		assert.GreaterOrEqual(t, years, prev, "balance %d", balance)
		prev = years
	}
}

func TestMonteCarlo_ZeroStdDevMatchesDeterministic(t *testing.T) {
	sim := testSimulator()
	ctx := context.Background()

	for _, expense := range []int64{30000, 40000, 60000} {
		p := flatParams(1000000, expense)
		p.MeanReturn = d("0.02")
		p.InflationRate = d("0.01")

		det := sim.Deterministic(p)
		mc, err := sim.MonteCarlo(ctx, p)
		require.NoError(t, err)
		require.True(t, mc.Applicable)

		survives := det.Status == domain.LongevityExceedsCap || det.Years > p.HorizonYears
		expected := decimal.Zero
		if survives {
			expected = decimal.NewFromInt(100)
		}
		assert.True(t, mc.SuccessRate.Equal(expected), "expense %d: success %s, deterministic %s", expense, mc.SuccessRate, det)

		for _, b := range mc.EndingBalances {
			assert.True(t, b.Equal(mc.EndingBalances[0]))
		}
	}
}

func TestMonteCarlo_SuccessRateBoundsAndReproducibility(t *testing.T) {
	p := flatParams(800000, 45000)
	p.MeanReturn = d("0.05")
	p.StdDev = d("0.12")
	p.InflationRate = d("0.03")

	first, err := testSimulator().MonteCarlo(context.Background(), p)
	require.NoError(t, err)
	second, err := testSimulator().MonteCarlo(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 200, first.Trials)
	assert.Len(t, first.EndingBalances, 200)
	assert.True(t, first.SuccessRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, first.SuccessRate.LessThanOrEqual(decimal.NewFromInt(100)))
	assert.True(t, first.P10.LessThanOrEqual(first.P50))
	assert.True(t, first.P50.LessThanOrEqual(first.P90))
	assert.True(t, first.SuccessRate.Equal(second.SuccessRate), "same seed, same result")
	assert.True(t, first.P50.Equal(second.P50))
	assert.NotEmpty(t, first.Histogram)
}

func TestMonteCarlo_NotApplicable(t *testing.T) {
	sim := testSimulator()

	noHorizon := flatParams(1000000, 40000)
	noHorizon.HorizonYears = 0
	mc, err := sim.MonteCarlo(context.Background(), noHorizon)
	require.NoError(t, err)
	assert.False(t, mc.Applicable)

	series, err := sim.MonteCarloSeries(context.Background(), flatParams(0, 40000))
	require.NoError(t, err)
	assert.False(t, series.Applicable)
	assert.Empty(t, series.Bands)
}

func TestMonteCarloSeries(t *testing.T) {
	p := flatParams(500000, 40000)
	p.MeanReturn = d("0.04")
	p.StdDev = d("0.10")

	series, err := testSimulator().MonteCarloSeries(context.Background(), p)
	require.NoError(t, err)
	require.True(t, series.Applicable)
	require.Len(t, series.Bands, 31)
	assert.Equal(t, 50, series.Trials)

	start := series.Bands[0]
	assert.Equal(t, 0, start.Year)
	assert.Equal(t, 2039, start.CalendarYear)
	assert.True(t, start.P10.Equal(p.StartingBalance))
	assert.True(t, start.P50.Equal(p.StartingBalance))
	assert.True(t, start.P90.Equal(p.StartingBalance))

	assert.Equal(t, 1, series.Bands[1].Year)
	assert.Equal(t, 2040, series.Bands[1].CalendarYear)
	assert.Equal(t, 2069, series.Bands[30].CalendarYear)
	for _, b := range series.Bands {
		assert.True(t, b.P10.LessThanOrEqual(b.P50))
		assert.True(t, b.P50.LessThanOrEqual(b.P90))
		assert.False(t, b.P10.IsNegative())
	}
}

func TestMonteCarloSeries_DepletedYearsAreZero(t *testing.T) {
	p := flatParams(100000, 40000)
	series, err := testSimulator().MonteCarloSeries(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, series.Bands, 31)
	assert.True(t, series.Bands[0].P50.Equal(decimal.NewFromInt(100000)))
	assert.True(t, series.Bands[1].P50.Equal(decimal.NewFromInt(60000)))
	assert.True(t, series.Bands[2].P50.Equal(decimal.NewFromInt(20000)))
	assert.True(t, series.Bands[3].P90.IsZero())
	assert.True(t, series.Bands[30].P90.IsZero())
}

func TestMonteCarlo_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testSimulator().MonteCarlo(ctx, flatParams(1000000, 40000))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMonteCarlo_Timeout(t *testing.T) {
	sim := NewDepletionSimulator(Settings{SummaryTrials: 50, Workers: 1, Seed: 1, Timeout: time.Nanosecond})

	p := flatParams(1000000, 40000)
	p.StdDev = d("0.1")
	// the deadline may pass before or during the batch; either way it surfaces as DeadlineExceeded
	_, err := sim.MonteCarlo(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSettingsDefaults(t *testing.T) {
	sim := NewDepletionSimulator(Settings{})
	assert.Equal(t, DefaultSummaryTrials, sim.Settings.SummaryTrials)
	assert.Equal(t, DefaultSeriesTrials, sim.Settings.SeriesTrials)
	assert.Equal(t, DefaultLongevityCap, sim.Settings.LongevityCap)
	assert.Equal(t, DefaultHistogramBins, sim.Settings.HistogramBins)
	assert.Equal(t, DefaultWorkers, sim.Settings.Workers)
}
