package calculation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// NormalGenerator draws normally distributed values.
// A generator is owned by a single trial and is not safe for concurrent use.
type NormalGenerator interface {
	Normal(mean, stdDev decimal.Decimal) decimal.Decimal
}

// GeneratorFactory creates an independent generator for one trial stream.
type GeneratorFactory func(seed int64) NormalGenerator

// BoxMuller samples normal variates from a seeded uniform source.
type BoxMuller struct {
	rng *rand.Rand
}

// NewBoxMuller creates a generator whose sequence is fully determined by seed.
func NewBoxMuller(seed int64) NormalGenerator {
	return &BoxMuller{rng: rand.New(rand.NewSource(seed))}
}

// Normal returns mean + z*stdDev. A zero stdDev returns mean exactly without drawing.
func (b *BoxMuller) Normal(mean, stdDev decimal.Decimal) decimal.Decimal {
	if stdDev.IsZero() {
		return mean
	}
	u1 := b.rng.Float64()
	for u1 == 0 {
		u1 = b.rng.Float64()
	}
	u2 := b.rng.Float64()
	z := boxMullerTransform(u1, u2)
	return mean.Add(decimal.NewFromFloat(z).Mul(stdDev))
}

// boxMullerTransform converts two uniform draws in (0,1) to a standard normal variate.
func boxMullerTransform(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
