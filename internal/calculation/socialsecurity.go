package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// Claiming age bounds for the benefit tables.
const (
	MinClaimAge        = 62
	FullRetirementAge  = 67
	MaxClaimAge        = 70
	MaxSpousalClaimAge = 67
)

var (
	// EarlyReductionFactors scales the FRA benefit when claiming before 67.
	EarlyReductionFactors = map[int]decimal.Decimal{
		62: decimal.RequireFromString("0.70"),
		63: decimal.RequireFromString("0.75"),
		64: decimal.RequireFromString("0.80"),
		65: decimal.RequireFromString("0.867"),
		66: decimal.RequireFromString("0.933"),
		67: decimal.RequireFromString("1.00"),
	}

	// DelayedCreditFactors scales the FRA benefit when claiming after 67.
	DelayedCreditFactors = map[int]decimal.Decimal{
		68: decimal.RequireFromString("1.08"),
		69: decimal.RequireFromString("1.16"),
		70: decimal.RequireFromString("1.24"),
	}

	// SpousalFactors is the fraction of the primary earner's FRA benefit a spouse receives.
	SpousalFactors = map[int]decimal.Decimal{
		62: decimal.RequireFromString("0.325"),
		63: decimal.RequireFromString("0.35"),
		64: decimal.RequireFromString("0.375"),
		65: decimal.RequireFromString("0.417"),
		66: decimal.RequireFromString("0.458"),
		67: decimal.RequireFromString("0.50"),
	}
)

// BenefitInputs are the Social Security elections for the household.
type BenefitInputs struct {
	Person1FRA      decimal.Decimal
	Person2FRA      decimal.Decimal
	Person1ClaimAge int
	Person2ClaimAge int
}

// SocialSecurityCalculator computes monthly benefits from the age-indexed factor tables.
type SocialSecurityCalculator struct {
	Logger Logger
}

// NewSocialSecurityCalculator creates a new Social Security calculator
func NewSocialSecurityCalculator() *SocialSecurityCalculator {
	return &SocialSecurityCalculator{Logger: NopLogger{}}
}

// PrimaryBenefit returns the primary earner's monthly benefit when claiming at age.
// Ages outside 62-70 yield zero.
func PrimaryBenefit(fra decimal.Decimal, age int) decimal.Decimal {
	if fra.IsNegative() {
		return decimal.Zero
	}
	if f, ok := EarlyReductionFactors[age]; ok {
		return fra.Mul(f)
	}
	if f, ok := DelayedCreditFactors[age]; ok {
		return fra.Mul(f)
	}
	return decimal.Zero
}

// OwnRecordBenefit is a secondary claimant's benefit on their own record.
// Only ages 62-67 are modelled for the secondary claimant.
func OwnRecordBenefit(fra decimal.Decimal, age int) decimal.Decimal {
	if age < MinClaimAge || age > MaxSpousalClaimAge {
		return decimal.Zero
	}
	return PrimaryBenefit(fra, age)
}

// SpousalBenefit is the benefit drawn on the primary earner's record.
func SpousalBenefit(primaryFRA decimal.Decimal, age int) decimal.Decimal {
	f, ok := SpousalFactors[age]
	if !ok || primaryFRA.IsNegative() {
		return decimal.Zero
	}
	return primaryFRA.Mul(f)
}

// SecondaryBenefit is the larger of the own-record and spousal claims.
func SecondaryBenefit(primaryFRA, ownFRA decimal.Decimal, age int) decimal.Decimal {
	return decimal.Max(OwnRecordBenefit(ownFRA, age), SpousalBenefit(primaryFRA, age))
}

// PrimarySchedule lists the primary benefit for every claiming age 62-70.
func PrimarySchedule(fra decimal.Decimal) []domain.BenefitScheduleRow {
	rows := make([]domain.BenefitScheduleRow, 0, MaxClaimAge-MinClaimAge+1)
	for age := MinClaimAge; age <= MaxClaimAge; age++ {
		rows = append(rows, domain.BenefitScheduleRow{Age: age, Monthly: PrimaryBenefit(fra, age)})
	}
	return rows
}

// SecondarySchedule lists the secondary benefit for every claiming age 62-67.
func SecondarySchedule(primaryFRA, ownFRA decimal.Decimal) []domain.BenefitScheduleRow {
	rows := make([]domain.BenefitScheduleRow, 0, MaxSpousalClaimAge-MinClaimAge+1)
	for age := MinClaimAge; age <= MaxSpousalClaimAge; age++ {
		rows = append(rows, domain.BenefitScheduleRow{Age: age, Monthly: SecondaryBenefit(primaryFRA, ownFRA, age)})
	}
	return rows
}

// CalculateBenefits returns the elected monthly benefits and both schedules.
// Negative FRA estimates are treated as zero.
func (ssc *SocialSecurityCalculator) CalculateBenefits(in BenefitInputs) domain.SocialSecurityResult {
	p1FRA := dec.NewMoneyFromDecimal(in.Person1FRA).NonNegative()
	p2FRA := dec.NewMoneyFromDecimal(in.Person2FRA).NonNegative()

	p1 := PrimaryBenefit(p1FRA, in.Person1ClaimAge)
	p2 := SecondaryBenefit(p1FRA, p2FRA, in.Person2ClaimAge)
	if p1.IsZero() && p1FRA.IsPositive() {
		ssc.Logger.Debugf("person 1 claim age %d is outside %d-%d; benefit is zero", in.Person1ClaimAge, MinClaimAge, MaxClaimAge)
	}

	total := p1.Add(p2)
	return domain.SocialSecurityResult{
		Person1Monthly:  p1,
		Person2Monthly:  p2,
		TotalMonthly:    total,
		TotalAnnual:     total.Mul(dec.Twelve),
		Person1Schedule: PrimarySchedule(p1FRA),
		Person2Schedule: SecondarySchedule(p1FRA, p2FRA),
	}
}
