package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearsToRetirement(t *testing.T) {
	tests := []struct {
		name          string
		retirementAge int
		ages          []int
		expected      int
	}{
		{name: "older member drives", retirementAge: 65, ages: []int{55, 58}, expected: 7},
		{name: "already past retirement", retirementAge: 60, ages: []int{62, 50}, expected: 0},
		{name: "exactly at retirement", retirementAge: 60, ages: []int{60, 60}, expected: 0},
		{name: "no ages", retirementAge: 65, expected: 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, YearsToRetirement(tt.retirementAge, tt.ages...))
		})
	}
}

func TestRetirementAndCalendarYears(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	year := RetirementYear(now, 10)
	assert.Equal(t, 2035, year)
	assert.Equal(t, 2035, CalendarYear(year, 1))
	assert.Equal(t, 2064, CalendarYear(year, 30))
}

func TestPartnerAges(t *testing.T) {
	offset := PartnerAgeOffset(55, 52)
	assert.Equal(t, 3, offset)
	assert.Equal(t, 70, PrimaryAgeAt(67, offset))
	assert.Equal(t, 62, PrimaryAgeAt(65, PartnerAgeOffset(50, 53)))
	assert.Equal(t, 60, AgeInYear(55, 2025, 2030))
}
