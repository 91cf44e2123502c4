package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// Treatment describes how a holding's projected value is routed at retirement.
type Treatment string

const (
	// TreatmentPortfolio adds the projected value to the withdrawal pool.
	TreatmentPortfolio Treatment = "Portfolio"
	// TreatmentLumpSum counts toward net worth only.
	TreatmentLumpSum Treatment = "LumpSum"
	// TreatmentFixedPercent pays a fixed percent of the projected value each year.
	TreatmentFixedPercent Treatment = "FixedPercent"
	// TreatmentFixedAmount pays a fixed dollar amount each month.
	TreatmentFixedAmount Treatment = "FixedAmount"
)

// ValidTreatments lists every recognised treatment category.
func ValidTreatments() []Treatment {
	return []Treatment{TreatmentPortfolio, TreatmentLumpSum, TreatmentFixedPercent, TreatmentFixedAmount}
}

// Normalized maps an empty treatment onto Portfolio.
func (t Treatment) Normalized() Treatment {
	if t == "" {
		return TreatmentPortfolio
	}
	return t
}

// Valid reports whether t is empty or one of ValidTreatments.
func (t Treatment) Valid() bool {
	for _, v := range ValidTreatments() {
		if t.Normalized() == v {
			return true
		}
	}
	return false
}

// EventType says whether a life event costs money or brings it in.
type EventType string

const (
	EventExpense EventType = "Expense"
	EventIncome  EventType = "Income"
)

// Frequency says whether a life event happens once or every year from its start.
type Frequency string

const (
	FrequencyOneTime Frequency = "One-Time"
	FrequencyAnnual  Frequency = "Annual"
)

// ParseFrequency accepts the common spellings of a frequency.
func ParseFrequency(s string) (Frequency, bool) {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)) {
	case "onetime", "once":
		return FrequencyOneTime, true
	case "annual", "yearly":
		return FrequencyAnnual, true
	}
	return "", false
}

// ParseEventType accepts expense/income in any letter case.
func ParseEventType(s string) (EventType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return EventExpense, true
	case "income":
		return EventIncome, true
	}
	return "", false
}

// DefaultScenarioName names a scenario saved without an explicit name.
const DefaultScenarioName = "Base Case"

// Snapshot is the complete household input for one projection run.
// The engine never mutates a snapshot.
type Snapshot struct {
	Name             string           `yaml:"name" json:"name" toml:"name"`
	PersonalInfo     PersonalInfo     `yaml:"personal_info" json:"personal_info" toml:"personal_info"`
	Income           []IncomeItem     `yaml:"income,omitempty" json:"income,omitempty" toml:"income"`
	Expenses         []ExpenseItem    `yaml:"expenses,omitempty" json:"expenses,omitempty" toml:"expenses"`
	MainInvestments  []Holding        `yaml:"main_investments" json:"main_investments" toml:"main_investments"`
	OtherInvestments []Holding        `yaml:"other_investments,omitempty" json:"other_investments,omitempty" toml:"other_investments"`
	SocialSecurity   SocialSecurity   `yaml:"social_security" json:"social_security" toml:"social_security"`
	Rentals          []RentalProperty `yaml:"rentals,omitempty" json:"rentals,omitempty" toml:"rentals"`
	LifeEvents       []LifeEvent      `yaml:"life_events,omitempty" json:"life_events,omitempty" toml:"life_events"`
	Assets           []OtherAsset     `yaml:"assets,omitempty" json:"assets,omitempty" toml:"assets"`
	Liabilities      []Liability      `yaml:"liabilities,omitempty" json:"liabilities,omitempty" toml:"liabilities"`
	Assumptions      Assumptions      `yaml:"assumptions" json:"assumptions" toml:"assumptions"`
}

// PersonalInfo holds the household ages. Person 1 is the primary earner.
type PersonalInfo struct {
	CurrentAge1   dec.Int `yaml:"current_age_1" json:"current_age_1" toml:"current_age_1"`
	CurrentAge2   dec.Int `yaml:"current_age_2" json:"current_age_2" toml:"current_age_2"`
	RetirementAge dec.Int `yaml:"retirement_age" json:"retirement_age" toml:"retirement_age"`
}

// IncomeItem is a monthly budget income line.
type IncomeItem struct {
	Description string    `yaml:"description" json:"description" toml:"description"`
	Amount      dec.Money `yaml:"amount" json:"amount" toml:"amount"`
}

// ExpenseItem is a monthly budget expense line.
type ExpenseItem struct {
	Category string    `yaml:"category" json:"category" toml:"category"`
	Amount   dec.Money `yaml:"amount" json:"amount" toml:"amount"`
}

// Holding is a single investment account.
type Holding struct {
	ID                  string      `yaml:"id,omitempty" json:"id,omitempty" toml:"id"`
	Holder              string      `yaml:"holder" json:"holder" toml:"holder"`
	AccountType         string      `yaml:"account_type" json:"account_type" toml:"account_type"`
	Description         string      `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
	CurrentValue        dec.Money   `yaml:"current_value" json:"current_value" toml:"current_value"`
	MonthlyContribution dec.Money   `yaml:"monthly_contribution" json:"monthly_contribution" toml:"monthly_contribution"`
	ExpectedReturn      dec.Percent `yaml:"expected_return" json:"expected_return" toml:"expected_return"`
	ExpenseRatio        dec.Percent `yaml:"expense_ratio" json:"expense_ratio" toml:"expense_ratio"`
	StdDev              dec.Percent `yaml:"std_dev" json:"std_dev" toml:"std_dev"`
	Treatment           Treatment   `yaml:"treatment,omitempty" json:"treatment,omitempty" toml:"treatment"`

	// Distribution is a whole percent for FixedPercent and a monthly dollar amount for FixedAmount.
	Distribution dec.Money `yaml:"distribution,omitempty" json:"distribution,omitempty" toml:"distribution"`
	Notes        string    `yaml:"notes,omitempty" json:"notes,omitempty" toml:"notes"`
}

// NetReturn is the expected return minus the expense ratio, as a fraction.
func (h Holding) NetReturn() decimal.Decimal {
	return h.ExpectedReturn.Rate().Sub(h.ExpenseRatio.Rate())
}

// IsRothLike reports whether the account type mentions Roth.
func (h Holding) IsRothLike() bool {
	return strings.Contains(strings.ToLower(h.AccountType), "roth")
}

// DistributionValue returns Distribution, falling back to a number written in Notes.
func (h Holding) DistributionValue() decimal.Decimal {
	if !h.Distribution.IsZero() {
		return h.Distribution.Decimal
	}
	return dec.ParseCurrency(h.Notes)
}

// SocialSecurity holds each person's FRA benefit and chosen claiming age.
type SocialSecurity struct {
	Person1FRABenefit dec.Money `yaml:"person1_fra_benefit" json:"person1_fra_benefit" toml:"person1_fra_benefit"`
	Person2FRABenefit dec.Money `yaml:"person2_fra_benefit" json:"person2_fra_benefit" toml:"person2_fra_benefit"`
	Person1StartAge   dec.Int   `yaml:"person1_start_age" json:"person1_start_age" toml:"person1_start_age"`
	Person2StartAge   dec.Int   `yaml:"person2_start_age" json:"person2_start_age" toml:"person2_start_age"`
}

// RentalProperty is an owned rental unit and its financing.
type RentalProperty struct {
	Address                  string      `yaml:"address" json:"address" toml:"address"`
	PurchasePrice            dec.Money   `yaml:"purchase_price" json:"purchase_price" toml:"purchase_price"`
	RehabCost                dec.Money   `yaml:"rehab_cost" json:"rehab_cost" toml:"rehab_cost"`
	ClosingCost              dec.Money   `yaml:"closing_cost" json:"closing_cost" toml:"closing_cost"`
	LoanAmount               dec.Money   `yaml:"loan_amount" json:"loan_amount" toml:"loan_amount"`
	InterestRate             dec.Percent `yaml:"interest_rate" json:"interest_rate" toml:"interest_rate"`
	LoanTermYears            dec.Int     `yaml:"loan_term_years,omitempty" json:"loan_term_years,omitempty" toml:"loan_term_years"`
	LoanTermMonths           dec.Int     `yaml:"loan_term_months,omitempty" json:"loan_term_months,omitempty" toml:"loan_term_months"`
	PaymentsMade             dec.Int     `yaml:"payments_made" json:"payments_made" toml:"payments_made"`
	EstimatedValue           dec.Money   `yaml:"estimated_value" json:"estimated_value" toml:"estimated_value"`
	MonthlyRent              dec.Money   `yaml:"monthly_rent" json:"monthly_rent" toml:"monthly_rent"`
	MonthlyOperatingExpense  dec.Money   `yaml:"monthly_operating_expense" json:"monthly_operating_expense" toml:"monthly_operating_expense"`
	MonthlyPrincipalInterest dec.Money   `yaml:"monthly_principal_interest" json:"monthly_principal_interest" toml:"monthly_principal_interest"`
}

// TermMonths returns the loan term in months. An explicit month count wins over years.
func (r RentalProperty) TermMonths() int {
	if r.LoanTermMonths > 0 {
		return int(r.LoanTermMonths)
	}
	return int(r.LoanTermYears) * 12
}

// LifeEvent is a dated one-time or recurring expense or income.
type LifeEvent struct {
	Year        dec.Int   `yaml:"year" json:"year" toml:"year"`
	Type        EventType `yaml:"type" json:"type" toml:"type"`
	Amount      dec.Money `yaml:"amount" json:"amount" toml:"amount"`
	Frequency   Frequency `yaml:"frequency" json:"frequency" toml:"frequency"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
}

// OtherAsset is a non-investment asset such as cash or a vehicle.
type OtherAsset struct {
	Type        string    `yaml:"type" json:"type" toml:"type"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
	Value       dec.Money `yaml:"value" json:"value" toml:"value"`
}

// Liability is an outstanding debt outside the rental portfolio.
type Liability struct {
	Type        string    `yaml:"type" json:"type" toml:"type"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
	Balance     dec.Money `yaml:"balance" json:"balance" toml:"balance"`
}

// Assumptions is the flat block of planning assumptions. Percents are whole numbers.
type Assumptions struct {
	InflationRate                dec.Percent `yaml:"inflation_rate" json:"inflation_rate" toml:"inflation_rate"`
	PostRetirementReturn         dec.Percent `yaml:"post_retirement_return" json:"post_retirement_return" toml:"post_retirement_return"`
	PostRetirementStdDev         dec.Percent `yaml:"post_retirement_std_dev" json:"post_retirement_std_dev" toml:"post_retirement_std_dev"`
	SimulationYears              dec.Int     `yaml:"simulation_years" json:"simulation_years" toml:"simulation_years"`
	DesiredRetirementIncomeToday dec.Money   `yaml:"desired_retirement_income_today" json:"desired_retirement_income_today" toml:"desired_retirement_income_today"`
	WithdrawalRate               dec.Percent `yaml:"withdrawal_rate" json:"withdrawal_rate" toml:"withdrawal_rate"`
	TaxRateNonRoth               dec.Percent `yaml:"tax_rate_non_roth" json:"tax_rate_non_roth" toml:"tax_rate_non_roth"`
	RentalSellingCost            dec.Percent `yaml:"rental_selling_cost" json:"rental_selling_cost" toml:"rental_selling_cost"`
}
