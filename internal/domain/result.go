package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// LongevityStatus classifies a deterministic longevity outcome.
type LongevityStatus string

const (
	// LongevityNotApplicable means the inputs were degenerate (no balance, no expense).
	LongevityNotApplicable LongevityStatus = "not_applicable"
	// LongevityDepleted means the balance ran out after Years years.
	LongevityDepleted LongevityStatus = "depleted"
	// LongevityExceedsCap means the balance outlived the cap.
	LongevityExceedsCap LongevityStatus = "exceeds_cap"
)

// Longevity is how many years the money lasts.
type Longevity struct {
	Status LongevityStatus `json:"status" yaml:"status"`
	Years  int             `json:"years" yaml:"years"`
	Cap    int             `json:"cap" yaml:"cap"`
}

// NotApplicableLongevity is the sentinel for degenerate inputs.
func NotApplicableLongevity(limit int) Longevity {
	return Longevity{Status: LongevityNotApplicable, Cap: limit}
}

// String renders "N/A", the year count, or "<cap>+".
func (l Longevity) String() string {
	switch l.Status {
	case LongevityDepleted:
		return strconv.Itoa(l.Years)
	case LongevityExceedsCap:
		return strconv.Itoa(l.Cap) + "+"
	default:
		return "N/A"
	}
}

// BenefitScheduleRow is one claiming age and the monthly benefit it yields.
type BenefitScheduleRow struct {
	Age     int             `json:"age" yaml:"age"`
	Monthly decimal.Decimal `json:"monthly" yaml:"monthly"`
}

// SocialSecurityResult holds the elected benefits and the full schedules.
type SocialSecurityResult struct {
	Person1Monthly  decimal.Decimal      `json:"person1_monthly" yaml:"person1_monthly"`
	Person2Monthly  decimal.Decimal      `json:"person2_monthly" yaml:"person2_monthly"`
	TotalMonthly    decimal.Decimal      `json:"total_monthly" yaml:"total_monthly"`
	TotalAnnual     decimal.Decimal      `json:"total_annual" yaml:"total_annual"`
	Person1Schedule []BenefitScheduleRow `json:"person1_schedule" yaml:"person1_schedule"`
	Person2Schedule []BenefitScheduleRow `json:"person2_schedule" yaml:"person2_schedule"`
}

// HoldingProjection is the derived record for one holding at retirement.
type HoldingProjection struct {
	ID             string          `json:"id,omitempty" yaml:"id,omitempty"`
	Holder         string          `json:"holder" yaml:"holder"`
	AccountType    string          `json:"account_type" yaml:"account_type"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	CurrentValue   decimal.Decimal `json:"current_value" yaml:"current_value"`
	ProjectedValue decimal.Decimal `json:"projected_value" yaml:"projected_value"`
	NetReturn      decimal.Decimal `json:"net_return" yaml:"net_return"`
	StdDev         decimal.Decimal `json:"std_dev" yaml:"std_dev"`
	IsRoth         bool            `json:"is_roth" yaml:"is_roth"`
	Treatment      Treatment       `json:"treatment" yaml:"treatment"`

	// Distribution is copied from the holding for FixedPercent/FixedAmount routing.
	Distribution decimal.Decimal `json:"distribution,omitempty" yaml:"distribution,omitempty"`
}

// Pools is the withdrawal pool split by tax treatment.
type Pools struct {
	Roth                decimal.Decimal `json:"roth" yaml:"roth"`
	NonRoth             decimal.Decimal `json:"non_roth" yaml:"non_roth"`
	Total               decimal.Decimal `json:"total" yaml:"total"`
	MainProjectedTotal  decimal.Decimal `json:"main_projected_total" yaml:"main_projected_total"`
	OtherProjectedTotal decimal.Decimal `json:"other_projected_total" yaml:"other_projected_total"`
}

// FixedIncome is non-portfolio income at retirement.
type FixedIncome struct {
	FromHoldingsMonthly   decimal.Decimal `json:"from_holdings_monthly" yaml:"from_holdings_monthly"`
	RentalMonthly         decimal.Decimal `json:"rental_monthly" yaml:"rental_monthly"`
	SocialSecurityMonthly decimal.Decimal `json:"social_security_monthly" yaml:"social_security_monthly"`
	TotalMonthly          decimal.Decimal `json:"total_monthly" yaml:"total_monthly"`
	TotalAnnual           decimal.Decimal `json:"total_annual" yaml:"total_annual"`
}

// RentalMetrics are the derived figures for one property.
type RentalMetrics struct {
	Address                  string          `json:"address" yaml:"address"`
	EstimatedValue           decimal.Decimal `json:"estimated_value" yaml:"estimated_value"`
	LoanBalance              decimal.Decimal `json:"loan_balance" yaml:"loan_balance"`
	Equity                   decimal.Decimal `json:"equity" yaml:"equity"`
	MonthlyRent              decimal.Decimal `json:"monthly_rent" yaml:"monthly_rent"`
	MonthlyOperatingExpense  decimal.Decimal `json:"monthly_operating_expense" yaml:"monthly_operating_expense"`
	MonthlyPrincipalInterest decimal.Decimal `json:"monthly_principal_interest" yaml:"monthly_principal_interest"`
	NetCashFlow              decimal.Decimal `json:"net_cash_flow" yaml:"net_cash_flow"`
	NetProceedsIfSold        decimal.Decimal `json:"net_proceeds_if_sold" yaml:"net_proceeds_if_sold"`

	// DerivedPrincipalInterest is the payment implied by the loan terms. It is informational only.
	DerivedPrincipalInterest decimal.Decimal `json:"derived_principal_interest" yaml:"derived_principal_interest"`
}

// RentalTotals sums RentalMetrics across properties.
type RentalTotals struct {
	Count                    int             `json:"count" yaml:"count"`
	Value                    decimal.Decimal `json:"value" yaml:"value"`
	LoanBalance              decimal.Decimal `json:"loan_balance" yaml:"loan_balance"`
	Equity                   decimal.Decimal `json:"equity" yaml:"equity"`
	MonthlyRent              decimal.Decimal `json:"monthly_rent" yaml:"monthly_rent"`
	MonthlyOperatingExpense  decimal.Decimal `json:"monthly_operating_expense" yaml:"monthly_operating_expense"`
	MonthlyPrincipalInterest decimal.Decimal `json:"monthly_principal_interest" yaml:"monthly_principal_interest"`
	NetCashFlow              decimal.Decimal `json:"net_cash_flow" yaml:"net_cash_flow"`
	NetProceedsIfSold        decimal.Decimal `json:"net_proceeds_if_sold" yaml:"net_proceeds_if_sold"`
}

// IncomeTimelineRow is the household's monthly income from one transition age onward.
type IncomeTimelineRow struct {
	Age1                  int             `json:"age1" yaml:"age1"`
	Age2                  int             `json:"age2" yaml:"age2"`
	Triggers              []string        `json:"triggers" yaml:"triggers"`
	PortfolioWithdrawal   decimal.Decimal `json:"portfolio_withdrawal" yaml:"portfolio_withdrawal"`
	Person1SocialSecurity decimal.Decimal `json:"person1_social_security" yaml:"person1_social_security"`
	Person2SocialSecurity decimal.Decimal `json:"person2_social_security" yaml:"person2_social_security"`
	Rental                decimal.Decimal `json:"rental" yaml:"rental"`
	OtherFixed            decimal.Decimal `json:"other_fixed" yaml:"other_fixed"`
	TotalMonthly          decimal.Decimal `json:"total_monthly" yaml:"total_monthly"`
	TotalAnnual           decimal.Decimal `json:"total_annual" yaml:"total_annual"`
}

// Goal compares the final steady-state income with the inflated desired income.
type Goal struct {
	Applicable                bool            `json:"applicable" yaml:"applicable"`
	FutureDesiredAnnualIncome decimal.Decimal `json:"future_desired_annual_income" yaml:"future_desired_annual_income"`
	FinalAnnualIncome         decimal.Decimal `json:"final_annual_income" yaml:"final_annual_income"`
	Shortfall                 decimal.Decimal `json:"shortfall" yaml:"shortfall"`
	OnTrack                   bool            `json:"on_track" yaml:"on_track"`
	Message                   string          `json:"message" yaml:"message"`
}

// Budget is today's monthly income against monthly expenses.
type Budget struct {
	TotalIncome   decimal.Decimal `json:"total_income" yaml:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses" yaml:"total_expenses"`
	NetSavings    decimal.Decimal `json:"net_savings" yaml:"net_savings"`
}

// NetWorth is today's balance sheet plus the holistic starting balance at retirement.
type NetWorth struct {
	CurrentAssets           decimal.Decimal `json:"current_assets" yaml:"current_assets"`
	CurrentInvestments      decimal.Decimal `json:"current_investments" yaml:"current_investments"`
	RentalValue             decimal.Decimal `json:"rental_value" yaml:"rental_value"`
	Liabilities             decimal.Decimal `json:"liabilities" yaml:"liabilities"`
	RentalDebt              decimal.Decimal `json:"rental_debt" yaml:"rental_debt"`
	NetWorth                decimal.Decimal `json:"net_worth" yaml:"net_worth"`
	HolisticStartingBalance decimal.Decimal `json:"holistic_starting_balance" yaml:"holistic_starting_balance"`
}

// HistogramBin counts ending balances in [Lower, Upper).
type HistogramBin struct {
	Lower decimal.Decimal `json:"lower" yaml:"lower"`
	Upper decimal.Decimal `json:"upper" yaml:"upper"`
	Count int             `json:"count" yaml:"count"`
}

// MonteCarloSummary is the ending-balance view of a stochastic batch.
type MonteCarloSummary struct {
	Applicable     bool              `json:"applicable" yaml:"applicable"`
	Trials         int               `json:"trials" yaml:"trials"`
	Seed           int64             `json:"seed" yaml:"seed"`
	SuccessRate    decimal.Decimal   `json:"success_rate" yaml:"success_rate"`
	EndingBalances []decimal.Decimal `json:"ending_balances,omitempty" yaml:"-"`
	P10            decimal.Decimal   `json:"p10" yaml:"p10"`
	P50            decimal.Decimal   `json:"p50" yaml:"p50"`
	P90            decimal.Decimal   `json:"p90" yaml:"p90"`
	Histogram      []HistogramBin    `json:"histogram,omitempty" yaml:"histogram,omitempty"`
}

// PercentileBand is the cross-trial spread at one simulated year.
type PercentileBand struct {
	Year         int             `json:"year" yaml:"year"`
	CalendarYear int             `json:"calendar_year" yaml:"calendar_year"`
	P10          decimal.Decimal `json:"p10" yaml:"p10"`
	P50          decimal.Decimal `json:"p50" yaml:"p50"`
	P90          decimal.Decimal `json:"p90" yaml:"p90"`
}

// PercentileSeries is the year-by-year percentile view of a stochastic batch.
type PercentileSeries struct {
	Applicable bool             `json:"applicable" yaml:"applicable"`
	Trials     int              `json:"trials" yaml:"trials"`
	Bands      []PercentileBand `json:"bands,omitempty" yaml:"bands,omitempty"`
}

// YearValue is a value at a given number of years from today.
type YearValue struct {
	Year  int             `json:"year" yaml:"year"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// SimulationInputs records the parameters the depletion simulator ran with.
type SimulationInputs struct {
	StartingBalance      decimal.Decimal `json:"starting_balance" yaml:"starting_balance"`
	HolisticBalance      decimal.Decimal `json:"holistic_balance" yaml:"holistic_balance"`
	InitialAnnualExpense decimal.Decimal `json:"initial_annual_expense" yaml:"initial_annual_expense"`
	FixedAnnualIncome    decimal.Decimal `json:"fixed_annual_income" yaml:"fixed_annual_income"`
	InflationRate        decimal.Decimal `json:"inflation_rate" yaml:"inflation_rate"`
	MeanReturn           decimal.Decimal `json:"mean_return" yaml:"mean_return"`
	StdDev               decimal.Decimal `json:"std_dev" yaml:"std_dev"`
	HorizonYears         int             `json:"horizon_years" yaml:"horizon_years"`
	IncomeStreams        []IncomeStream  `json:"income_streams,omitempty" yaml:"income_streams,omitempty"`
}

// IncomeStream is fixed income that joins from a given simulated year on,
// such as a Social Security benefit claimed after retirement.
type IncomeStream struct {
	Label     string          `json:"label" yaml:"label"`
	StartYear int             `json:"start_year" yaml:"start_year"`
	Annual    decimal.Decimal `json:"annual" yaml:"annual"`
}

// ProjectionResult is everything one projection run produces.
type ProjectionResult struct {
	YearsToRetirement int `json:"years_to_retirement" yaml:"years_to_retirement"`
	RetirementYear    int `json:"retirement_year" yaml:"retirement_year"`

	MainHoldings  []HoldingProjection `json:"main_holdings" yaml:"main_holdings"`
	OtherHoldings []HoldingProjection `json:"other_holdings" yaml:"other_holdings"`
	Pools         Pools               `json:"pools" yaml:"pools"`
	FixedIncome   FixedIncome         `json:"fixed_income" yaml:"fixed_income"`

	SocialSecurity SocialSecurityResult `json:"social_security" yaml:"social_security"`
	Rentals        []RentalMetrics      `json:"rentals" yaml:"rentals"`
	RentalTotals   RentalTotals         `json:"rental_totals" yaml:"rental_totals"`

	EstimatedMonthlyWithdrawal decimal.Decimal     `json:"estimated_monthly_withdrawal" yaml:"estimated_monthly_withdrawal"`
	Timeline                   []IncomeTimelineRow `json:"timeline" yaml:"timeline"`
	FinalMonthlyIncome         decimal.Decimal     `json:"final_monthly_income" yaml:"final_monthly_income"`
	FinalAnnualIncome          decimal.Decimal     `json:"final_annual_income" yaml:"final_annual_income"`

	Budget   Budget   `json:"budget" yaml:"budget"`
	Goal     Goal     `json:"goal" yaml:"goal"`
	NetWorth NetWorth `json:"net_worth" yaml:"net_worth"`

	Simulation         SimulationInputs  `json:"simulation" yaml:"simulation"`
	PortfolioLongevity Longevity         `json:"portfolio_longevity" yaml:"portfolio_longevity"`
	HolisticLongevity  Longevity         `json:"holistic_longevity" yaml:"holistic_longevity"`
	MonteCarlo         MonteCarloSummary `json:"monte_carlo" yaml:"monte_carlo"`
	PercentileSeries   PercentileSeries  `json:"percentile_series" yaml:"percentile_series"`
	ProjectionSeries   []YearValue       `json:"projection_series" yaml:"projection_series"`
}

// ScenarioResult pairs a scenario name with its projection.
type ScenarioResult struct {
	Name   string            `json:"name" yaml:"name"`
	Result *ProjectionResult `json:"result" yaml:"result"`
}

// ScenarioComparison is the input to every output formatter.
type ScenarioComparison struct {
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Scenarios   []ScenarioResult `json:"scenarios" yaml:"scenarios"`
}
