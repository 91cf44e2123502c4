package main

import (
	"flag"
	"fmt"

	"github.com/rpgo/retirement-projector/internal/calculation"
	"github.com/rpgo/retirement-projector/pkg/decimal"
)

// Prints the Social Security claiming schedules and a sample amortization
// so benefit and loan tables can be checked by hand.
func main() {
	fra1 := flag.String("fra1", "2516", "person 1 monthly benefit at full retirement age")
	fra2 := flag.String("fra2", "1400", "person 2 monthly benefit at full retirement age")
	loan := flag.String("loan", "80000", "loan principal for the amortization sample")
	rate := flag.String("rate", "4.5", "annual loan interest rate, whole percent")
	term := flag.Int("term", 360, "loan term in months")
	flag.Parse()

	primary := decimal.ParseCurrency(*fra1)
	own := decimal.ParseCurrency(*fra2)

	fmt.Println("Person 1 schedule (own record):")
	for _, row := range calculation.PrimarySchedule(primary) {
		fmt.Printf("  age %d: %s\n", row.Age, row.Monthly.StringFixed(2))
	}

	fmt.Println("Person 2 schedule (greater of own and spousal):")
	for _, row := range calculation.SecondarySchedule(primary, own) {
		fmt.Printf("  age %d: %s\n", row.Age, row.Monthly.StringFixed(2))
	}

	principal := decimal.ParseCurrency(*loan)
	monthly := decimal.RateFromNumber(decimal.ParseCurrency(*rate)).Div(decimal.Twelve)
	fmt.Printf("Loan %s at %s%% over %d months: payment %s\n",
		principal.StringFixed(2), *rate, *term, calculation.MonthlyPayment(principal, monthly, *term).StringFixed(2))
	for _, made := range []int{0, 60, 120, 240} {
		fmt.Printf("  balance after %d payments: %s\n", made,
			calculation.RemainingLoanBalance(principal, monthly, *term, made).StringFixed(2))
	}
}
