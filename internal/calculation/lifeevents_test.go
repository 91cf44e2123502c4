package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

func TestProjectLifeEvents(t *testing.T) {
	events := []domain.LifeEvent{
		{Year: 2040, Type: domain.EventExpense, Amount: dec.NewMoney(30000), Frequency: domain.FrequencyOneTime, Description: "Roof"},
		{Year: 2042, Type: domain.EventIncome, Amount: dec.NewMoney(12000), Frequency: domain.FrequencyAnnual, Description: "Pension"},
		{Year: 2042, Type: domain.EventExpense, Amount: dec.NewMoney(2000), Frequency: "annual"},
		{Year: 2035, Type: domain.EventExpense, Amount: dec.NewMoney(99999), Frequency: domain.FrequencyOneTime, Description: "before retirement"},
		{Year: 2041, Type: "gift", Amount: dec.NewMoney(5000), Frequency: domain.FrequencyOneTime},
		{Year: 2041, Type: domain.EventExpense, Amount: dec.NewMoney(5000), Frequency: "monthly"},
		{Year: 0, Type: domain.EventExpense, Amount: dec.NewMoney(5000), Frequency: domain.FrequencyOneTime},
	}

	m := ProjectLifeEvents(events, 2038, 2045)

	assert.True(t, m.At(2040).Equal(d("30000")), "expenses increase the withdrawal")
	assert.True(t, m.At(2042).Equal(d("-10000")), "income reduces the withdrawal")
	assert.True(t, m.At(2045).Equal(d("-10000")), "annual events run through the ceiling")
	assert.True(t, m.At(2046).IsZero(), "nothing past the ceiling")
	assert.True(t, m.At(2035).IsZero(), "events before retirement are ignored")
	assert.True(t, m.At(2041).IsZero(), "unknown type or frequency is skipped")
	assert.True(t, m.At(1999).IsZero())
}

func TestProjectLifeEvents_AnnualStartedBeforeRetirement(t *testing.T) {
	events := []domain.LifeEvent{
		{Year: 2030, Type: domain.EventExpense, Amount: dec.NewMoney(10000), Frequency: domain.FrequencyAnnual, Description: "Insurance premium"},
		{Year: 2030, Type: domain.EventExpense, Amount: dec.NewMoney(50000), Frequency: domain.FrequencyOneTime},
	}

	m := ProjectLifeEvents(events, 2040, 2070)

	assert.True(t, m.At(2040).Equal(d("10000")), "ongoing expense carries into retirement")
	assert.True(t, m.At(2070).Equal(d("10000")))
	assert.True(t, m.At(2030).IsZero(), "years before retirement are not recorded")
	assert.True(t, m.At(2039).IsZero())
	assert.Len(t, m, 31)
}

func TestEventMap_AnyIn(t *testing.T) {
	m := EventMap{2030: d("-500"), 2050: d("100")}
	isPositive := func(v decimal.Decimal) bool { return v.IsPositive() }

	assert.True(t, m.AnyIn(2025, 2035, func(v decimal.Decimal) bool { return !v.IsZero() }))
	assert.False(t, m.AnyIn(2025, 2035, isPositive))
	assert.True(t, m.AnyIn(2025, 2050, isPositive))
	assert.False(t, EventMap(nil).AnyIn(0, 3000, isPositive))
}
