package calculation

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// SortDecimals returns an ascending copy of values.
func SortDecimals(values []decimal.Decimal) []decimal.Decimal {
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	return sorted
}

// Percentile returns the p-th percentile (0-100) of an ascending slice.
//
// The target rank is p/100*(n-1) over zero-based positions. A fractional rank
// interpolates linearly between its two neighbours, so P50 of [10 20 30 40] is 25
// and P100 is the maximum. An empty slice yields zero.
func Percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	p = math.Min(math.Max(p, 0), 100)
	rank := decimal.NewFromFloat(p).Mul(decimal.NewFromInt(int64(n - 1))).Div(decimal.NewFromInt(100))
	lower := int(rank.Floor().IntPart())
	upper := int(rank.Ceil().IntPart())
	if lower == upper {
		return sorted[lower]
	}
	weight := rank.Sub(decimal.NewFromInt(int64(lower)))
	return sorted[lower].Add(sorted[upper].Sub(sorted[lower]).Mul(weight))
}

// EndingBalanceHistogram buckets balances into equal-width bins between the
// minimum and maximum. Identical balances collapse into a single bin.
func EndingBalanceHistogram(balances []decimal.Decimal, bins int) []domain.HistogramBin {
	if len(balances) == 0 || bins <= 0 {
		return nil
	}
	sorted := SortDecimals(balances)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo.Equal(hi) {
		return []domain.HistogramBin{{Lower: lo, Upper: hi, Count: len(sorted)}}
	}

	width := hi.Sub(lo).Div(decimal.NewFromInt(int64(bins)))
	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo.Add(width.Mul(decimal.NewFromInt(int64(i))))
		out[i].Upper = lo.Add(width.Mul(decimal.NewFromInt(int64(i + 1))))
	}
	out[bins-1].Upper = hi

	for _, v := range sorted {
		idx := int(v.Sub(lo).Div(width).IntPart())
		out[min(max(idx, 0), bins-1)].Count++
	}
	return out
}
