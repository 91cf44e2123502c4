package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/pkg/dateutil"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// seedFunc returns a pseudo-random seed when Settings.Seed is zero.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

func (s *DepletionSimulator) seed() int64 {
	if s.Settings.Seed != 0 {
		return s.Settings.Seed
	}
	return seedFunc()
}

// Deterministic runs a single path at the mean return for up to LongevityCap years.
func (s *DepletionSimulator) Deterministic(p SimulationParams) domain.Longevity {
	limit := s.Settings.LongevityCap
	if !p.applicable(limit) {
		s.Logger.Debugf("deterministic longevity not applicable: balance=%s expense=%s", p.StartingBalance, p.InitialAnnualExpense)
		return domain.NotApplicableLongevity(limit)
	}

	// Fixed income covers a flat expense forever and the balance can only grow.
	// Streams only ever add income, so year 1 is the lowest.
	last := dateutil.CalendarYear(p.RetirementYear, limit)
	if p.InitialAnnualExpense.LessThanOrEqual(p.fixedIncomeAt(1)) &&
		!p.InflationRate.IsPositive() &&
		!p.MeanReturn.IsNegative() &&
		!p.Events.AnyIn(p.RetirementYear, last, decimal.Decimal.IsPositive) {
		return domain.Longevity{Status: domain.LongevityExceedsCap, Years: limit, Cap: limit}
	}

	out := runPath(p, limit, func() decimal.Decimal { return p.MeanReturn }, false)
	if out.depleted {
		return domain.Longevity{Status: domain.LongevityDepleted, Years: out.years, Cap: limit}
	}
	return domain.Longevity{Status: domain.LongevityExceedsCap, Years: limit, Cap: limit}
}
