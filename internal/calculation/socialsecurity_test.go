package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryBenefit(t *testing.T) {
	fra := decimal.NewFromInt(2000)
	tests := []struct {
		name     string
		age      int
		expected decimal.Decimal
	}{
		{"earliest claim", 62, decimal.NewFromInt(1400)},
		{"age 65", 65, decimal.NewFromInt(1734)},
		{"full retirement age", 67, decimal.NewFromInt(2000)},
		{"delayed to 69", 69, decimal.NewFromInt(2320)},
		{"delayed to 70", 70, decimal.NewFromInt(2480)},
		{"too early", 61, decimal.Zero},
		{"past the table", 71, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrimaryBenefit(fra, tt.age)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestSecondaryBenefitIsMaxOfClaims(t *testing.T) {
	primaryFRA := decimal.NewFromInt(2516)
	for _, ownFRA := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(900), decimal.NewFromInt(2200)} {
		for age := MinClaimAge; age <= MaxClaimAge; age++ {
			own := OwnRecordBenefit(ownFRA, age)
			spousal := SpousalBenefit(primaryFRA, age)
			got := SecondaryBenefit(primaryFRA, ownFRA, age)

			assert.False(t, got.IsNegative(), "age %d", age)
			assert.False(t, PrimaryBenefit(primaryFRA, age).IsNegative(), "age %d", age)
			assert.True(t, got.Equal(decimal.Max(own, spousal)), "age %d: got %s own %s spousal %s", age, got, own, spousal)
		}
	}
}

func TestSecondaryBenefitCappedAtFRA(t *testing.T) {
	primaryFRA := decimal.NewFromInt(2000)
	assert.True(t, SecondaryBenefit(primaryFRA, decimal.Zero, 67).Equal(decimal.NewFromInt(1000)))
	assert.True(t, SecondaryBenefit(primaryFRA, decimal.NewFromInt(3000), 68).IsZero())
}

func TestCalculateBenefits(t *testing.T) {
	calc := NewSocialSecurityCalculator()
	res := calc.CalculateBenefits(BenefitInputs{
		Person1FRA:      decimal.NewFromInt(2516),
		Person2FRA:      decimal.Zero,
		Person1ClaimAge: 67,
		Person2ClaimAge: 67,
	})

	assert.True(t, res.Person1Monthly.Equal(decimal.NewFromInt(2516)))
	assert.True(t, res.Person2Monthly.Equal(decimal.NewFromInt(1258)))
	assert.True(t, res.TotalMonthly.Equal(decimal.NewFromInt(3774)))
	assert.True(t, res.TotalAnnual.Equal(decimal.NewFromInt(45288)))

	require.Len(t, res.Person1Schedule, 9)
	require.Len(t, res.Person2Schedule, 6)
	assert.Equal(t, 62, res.Person1Schedule[0].Age)
	assert.Equal(t, 70, res.Person1Schedule[8].Age)
	assert.Equal(t, 67, res.Person2Schedule[5].Age)
}

func TestCalculateBenefits_NegativeAndOutOfRange(t *testing.T) {
	calc := NewSocialSecurityCalculator()
	res := calc.CalculateBenefits(BenefitInputs{
		Person1FRA:      decimal.NewFromInt(-500),
		Person2FRA:      decimal.NewFromInt(1500),
		Person1ClaimAge: 67,
		Person2ClaimAge: 75,
	})

	assert.True(t, res.Person1Monthly.IsZero())
	assert.True(t, res.Person2Monthly.IsZero())
	for _, row := range res.Person1Schedule {
		assert.True(t, row.Monthly.IsZero())
	}
}
