package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// EventMap maps a calendar year to the net change in that year's portfolio withdrawal.
// Expenses are positive (more must be withdrawn) and income is negative.
type EventMap map[int]decimal.Decimal

// At returns the adjustment for year, zero when nothing is scheduled.
func (m EventMap) At(year int) decimal.Decimal {
	if v, ok := m[year]; ok {
		return v
	}
	return decimal.Zero
}

// AnyIn reports whether any year in [from, to] matches pred.
func (m EventMap) AnyIn(from, to int, pred func(decimal.Decimal) bool) bool {
	for year, v := range m {
		if year >= from && year <= to && pred(v) {
			return true
		}
	}
	return false
}

// ProjectLifeEvents builds the year-indexed adjustment map. One-time events dated
// before retirementYear are dropped. Annual events repeat through ceilingYear
// inclusive; one that started before retirement is recorded from retirementYear on.
// Events with an unknown type or frequency are skipped.
func ProjectLifeEvents(events []domain.LifeEvent, retirementYear, ceilingYear int) EventMap {
	m := EventMap{}
	for _, e := range events {
		year := int(e.Year)
		if year <= 0 {
			continue
		}
		kind, ok := domain.ParseEventType(string(e.Type))
		if !ok {
			continue
		}
		freq, ok := domain.ParseFrequency(string(e.Frequency))
		if !ok {
			continue
		}

		adj := e.Amount.NonNegative()
		if kind == domain.EventIncome {
			adj = adj.Neg()
		}

		switch freq {
		case domain.FrequencyOneTime:
			if year < retirementYear {
				continue
			}
			m[year] = m.At(year).Add(adj)
		case domain.FrequencyAnnual:
			for y := max(year, retirementYear); y <= ceilingYear; y++ {
				m[y] = m.At(y).Add(adj)
			}
		}
	}
	return m
}
