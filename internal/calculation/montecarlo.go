package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/pkg/dateutil"
)

// MonteCarlo runs SummaryTrials independent random-return paths over the horizon
// and reports the success rate and the distribution of ending balances.
func (s *DepletionSimulator) MonteCarlo(ctx context.Context, p SimulationParams) (domain.MonteCarloSummary, error) {
	if !p.applicable(p.HorizonYears) {
		s.Logger.Debugf("monte carlo not applicable: balance=%s expense=%s horizon=%d", p.StartingBalance, p.InitialAnnualExpense, p.HorizonYears)
		return domain.MonteCarloSummary{}, nil
	}

	trials := s.Settings.SummaryTrials
	seed := s.seed()
	outcomes := make([]pathOutcome, trials)

	err := s.runBatch(ctx, trials, func(trial int) {
		gen := s.NewGenerator(seed + int64(trial))
		outcomes[trial] = runPath(p, p.HorizonYears, func() decimal.Decimal {
			return gen.Normal(p.MeanReturn, p.StdDev)
		}, false)
	})
	if err != nil {
		return domain.MonteCarloSummary{}, err
	}

	successes := 0
	balances := make([]decimal.Decimal, trials)
	for i, o := range outcomes {
		if !o.depleted {
			successes++
		}
		balances[i] = o.ending
	}
	sorted := SortDecimals(balances)

	summary := domain.MonteCarloSummary{
		Applicable:     true,
		Trials:         trials,
		Seed:           seed,
		SuccessRate:    decimal.NewFromInt(int64(successes)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(trials))),
		EndingBalances: balances,
		P10:            Percentile(sorted, 10),
		P50:            Percentile(sorted, 50),
		P90:            Percentile(sorted, 90),
		Histogram:      EndingBalanceHistogram(sorted, s.Settings.HistogramBins),
	}
	s.Logger.Infof("monte carlo: %d trials, success rate %s%%", trials, summary.SuccessRate.StringFixed(1))
	return summary, nil
}

// MonteCarloSeries runs SeriesTrials paths and reports P10/P50/P90 of the
// balance at the end of every simulated year, preceded by a year-0 band at the
// starting balance. Depleted paths count as zero.
func (s *DepletionSimulator) MonteCarloSeries(ctx context.Context, p SimulationParams) (domain.PercentileSeries, error) {
	if !p.applicable(p.HorizonYears) {
		return domain.PercentileSeries{}, nil
	}

	trials := s.Settings.SeriesTrials
	seed := s.seed()
	paths := make([][]decimal.Decimal, trials)

	err := s.runBatch(ctx, trials, func(trial int) {
		gen := s.NewGenerator(seed + int64(trial))
		paths[trial] = runPath(p, p.HorizonYears, func() decimal.Decimal {
			return gen.Normal(p.MeanReturn, p.StdDev)
		}, true).balances
	})
	if err != nil {
		return domain.PercentileSeries{}, err
	}

	// Year 0 is the starting balance, shared by every trial.
	bands := make([]domain.PercentileBand, p.HorizonYears+1)
	bands[0] = domain.PercentileBand{
		CalendarYear: dateutil.CalendarYear(p.RetirementYear, 0),
		P10:          p.StartingBalance,
		P50:          p.StartingBalance,
		P90:          p.StartingBalance,
	}
	column := make([]decimal.Decimal, trials)
	for y := 1; y <= p.HorizonYears; y++ {
		for t := range paths {
			column[t] = paths[t][y-1]
		}
		sorted := SortDecimals(column)
		bands[y] = domain.PercentileBand{
			Year:         y,
			CalendarYear: dateutil.CalendarYear(p.RetirementYear, y),
			P10:          Percentile(sorted, 10),
			P50:          Percentile(sorted, 50),
			P90:          Percentile(sorted, 90),
		}
	}

	return domain.PercentileSeries{Applicable: true, Trials: trials, Bands: bands}, nil
}

// runBatch runs fn once per trial on a bounded worker pool. Each trial writes
// only its own slot, so no locking is needed. Cancellation of ctx, or the
// configured timeout, abandons the remaining trials.
func (s *DepletionSimulator) runBatch(ctx context.Context, trials int, fn func(trial int)) error {
	if s.Settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Settings.Timeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Settings.Workers)
	for trial := 0; trial < trials; trial++ {
		if gctx.Err() != nil {
			break
		}
		trial := trial
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(trial)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation batch interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("simulation batch interrupted: %w", err)
	}
	return nil
}
