package calculation

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/pkg/dateutil"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// Trigger labels used in the income timeline.
const (
	TriggerRetirement    = "Retirement"
	TriggerPerson1Social = "Person 1 Social Security"
	TriggerPerson2Social = "Person 2 Social Security"
)

// TimelineInputs are the monthly income components and the ages that gate them.
type TimelineInputs struct {
	RetirementAge   int
	CurrentAge1     int
	CurrentAge2     int
	Person1ClaimAge int
	Person2ClaimAge int

	Person1Monthly             decimal.Decimal
	Person2Monthly             decimal.Decimal
	PortfolioWithdrawalMonthly decimal.Decimal
	RentalMonthly              decimal.Decimal
	OtherFixedMonthly          decimal.Decimal
}

// ComposeIncomeTimeline produces one row per transition age, keyed by person 1's age,
// and returns the monthly total of the last row as the steady-state income.
// Person 2's claim age is translated to person 1's concurrent age.
func ComposeIncomeTimeline(in TimelineInputs) ([]domain.IncomeTimelineRow, decimal.Decimal) {
	if in.RetirementAge <= 0 {
		return nil, decimal.Zero
	}

	offset := dateutil.PartnerAgeOffset(in.CurrentAge1, in.CurrentAge2)
	p2Start := dateutil.PrimaryAgeAt(in.Person2ClaimAge, offset)
	// A single-person household has no partner transition.
	hasPartner := in.CurrentAge2 > 0 && in.Person2ClaimAge > 0 && !in.Person2Monthly.IsZero()
	transitions := []int{in.RetirementAge, in.Person1ClaimAge}
	if hasPartner {
		transitions = append(transitions, p2Start)
	}

	ages := lo.Uniq(lo.Filter(transitions, func(age, _ int) bool {
		return age >= in.RetirementAge
	}))
	slices.Sort(ages)

	rows := make([]domain.IncomeTimelineRow, 0, len(ages))
	for _, age := range ages {
		row := domain.IncomeTimelineRow{
			Age1:                age,
			Age2:                age - offset,
			PortfolioWithdrawal: in.PortfolioWithdrawalMonthly,
			Rental:              in.RentalMonthly,
			OtherFixed:          in.OtherFixedMonthly,
		}
		if age == in.RetirementAge {
			row.Triggers = append(row.Triggers, TriggerRetirement)
		}
		if in.Person1ClaimAge > 0 && age >= in.Person1ClaimAge {
			row.Person1SocialSecurity = in.Person1Monthly
			if age == in.Person1ClaimAge {
				row.Triggers = append(row.Triggers, TriggerPerson1Social)
			}
		}
		if hasPartner && age >= p2Start {
			row.Person2SocialSecurity = in.Person2Monthly
			if age == p2Start {
				row.Triggers = append(row.Triggers, TriggerPerson2Social)
			}
		}

		row.TotalMonthly = row.PortfolioWithdrawal.
			Add(row.Person1SocialSecurity).
			Add(row.Person2SocialSecurity).
			Add(row.Rental).
			Add(row.OtherFixed)
		row.TotalAnnual = dec.NewMoneyFromDecimal(row.TotalMonthly).Annual().Decimal
		rows = append(rows, row)
	}

	return rows, rows[len(rows)-1].TotalMonthly
}
