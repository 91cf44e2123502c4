package dateutil

import (
	"time"
)

// YearsToRetirement returns how many whole years remain until the household
// reaches the retirement age. The older member drives the date, and the
// result is never negative.
func YearsToRetirement(retirementAge int, currentAges ...int) int {
	oldest := 0
	for _, age := range currentAges {
		oldest = max(oldest, age)
	}
	return max(0, retirementAge-oldest)
}

// RetirementYear returns the calendar year in which retirement starts.
func RetirementYear(now time.Time, yearsToRetirement int) int {
	return now.Year() + yearsToRetirement
}

// CalendarYear maps a 1-based simulation year onto the calendar.
// Simulation year 1 is the retirement year itself.
func CalendarYear(retirementYear, simulationYear int) int {
	return retirementYear + simulationYear - 1
}

// PartnerAgeOffset is how much older person 1 is than person 2.
func PartnerAgeOffset(age1, age2 int) int {
	return age1 - age2
}

// PrimaryAgeAt converts a person 2 age into the matching person 1 age.
func PrimaryAgeAt(partnerAge, offset int) int {
	return partnerAge + offset
}

// AgeInYear returns the age someone aged currentAge in currentYear reaches in year.
func AgeInYear(currentAge, currentYear, year int) int {
	return currentAge + (year - currentYear)
}
