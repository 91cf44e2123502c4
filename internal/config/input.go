package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/retirement-projector/internal/domain"
	dec "github.com/rpgo/retirement-projector/pkg/decimal"
)

// ErrUnknownFormat is returned for snapshot files that are not YAML, TOML or JSON.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Snapshot file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// InputParser handles parsing of household snapshot files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
}

// LoadFromFile loads a snapshot from a YAML, TOML or JSON file. A snapshot
// without a name is named after the file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Snapshot, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	snap, err := ip.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if snap.Name == "" {
		snap.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return snap, nil
}

// Parse decodes and validates a snapshot in the given format.
func (ip *InputParser) Parse(data []byte, format string) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := ip.ValidateSnapshot(&snap); err != nil {
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}
	return &snap, nil
}

// ValidateSnapshot checks the structure of a snapshot. Numeric values are never
// rejected: amounts were already coerced when decoding and out-of-range ages
// simply produce zero benefits.
func (ip *InputParser) ValidateSnapshot(snap *domain.Snapshot) error {
	for i, h := range snap.MainInvestments {
		if err := validateHolding(h); err != nil {
			return fmt.Errorf("main investment %d: %w", i, err)
		}
	}
	for i, h := range snap.OtherInvestments {
		if err := validateHolding(h); err != nil {
			return fmt.Errorf("other investment %d: %w", i, err)
		}
	}
	for i, e := range snap.LifeEvents {
		if err := validateLifeEvent(e); err != nil {
			return fmt.Errorf("life event %d: %w", i, err)
		}
	}
	return nil
}

func validateHolding(h domain.Holding) error {
	if !h.Treatment.Valid() {
		names := make([]string, 0, 4)
		for _, t := range domain.ValidTreatments() {
			names = append(names, string(t))
		}
		return fmt.Errorf("invalid treatment %q (valid: %s)", h.Treatment, strings.Join(names, ", "))
	}
	return nil
}

func validateLifeEvent(e domain.LifeEvent) error {
	if _, ok := domain.ParseEventType(string(e.Type)); !ok {
		return fmt.Errorf("invalid type %q (valid: %s, %s)", e.Type, domain.EventExpense, domain.EventIncome)
	}
	if _, ok := domain.ParseFrequency(string(e.Frequency)); !ok {
		return fmt.Errorf("invalid frequency %q (valid: %s, %s)", e.Frequency, domain.FrequencyOneTime, domain.FrequencyAnnual)
	}
	return nil
}

// CreateExampleSnapshot returns a populated two-person household.
func (ip *InputParser) CreateExampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Name: domain.DefaultScenarioName,
		PersonalInfo: domain.PersonalInfo{
			CurrentAge1:   50,
			CurrentAge2:   49,
			RetirementAge: 65,
		},
		Income: []domain.IncomeItem{
			{Description: "Primary Income Source (Net Monthly)", Amount: dec.NewMoney(5441.64)},
			{Description: "Rental Income (Net Monthly)", Amount: dec.NewMoney(1125)},
		},
		Expenses: []domain.ExpenseItem{
			{Category: "Housing - HOA (Primary)", Amount: dec.NewMoney(1551.38)},
			{Category: "Housing - Property Taxes (Primary)", Amount: dec.NewMoney(406.15)},
			{Category: "Housing - Homeowners Insurance (Primary)", Amount: dec.NewMoney(235)},
			{Category: "Car Insurance", Amount: dec.NewMoney(136)},
			{Category: "Utilities (Home)", Amount: dec.NewMoney(98)},
			{Category: "Internet", Amount: dec.NewMoney(83)},
		},
		MainInvestments: []domain.Holding{
			{ID: "main-1", Holder: "Person 1", AccountType: "Roth IRA", Description: "Vanguard Roth IRA", CurrentValue: dec.NewMoney(108301.57), MonthlyContribution: dec.NewMoney(666.67), ExpectedReturn: dec.NewPercent(8), ExpenseRatio: dec.NewPercent(0.08), StdDev: dec.NewPercent(12)},
			{ID: "main-2", Holder: "Person 2", AccountType: "Roth IRA", Description: "Vanguard Roth IRA", CurrentValue: dec.NewMoney(107329.43), MonthlyContribution: dec.NewMoney(666.67), ExpectedReturn: dec.NewPercent(8), ExpenseRatio: dec.NewPercent(0.08), StdDev: dec.NewPercent(12)},
			{ID: "main-3", Holder: "Person 1", AccountType: "401(k)", Description: "Employer 401k - TDF", CurrentValue: dec.NewMoney(43485.69), MonthlyContribution: dec.NewMoney(582.39), ExpectedReturn: dec.NewPercent(8), ExpenseRatio: dec.NewPercent(0.02), StdDev: dec.NewPercent(10)},
			{ID: "main-4", Holder: "Person 1", AccountType: "401(a)", Description: "State Pension Fund", CurrentValue: dec.NewMoney(75192.76), ExpectedReturn: dec.NewPercent(8), ExpenseRatio: dec.NewPercent(0.07), StdDev: dec.NewPercent(7)},
		},
		OtherInvestments: []domain.Holding{
			{ID: "other-1", Holder: "Person 1", AccountType: "Employer Plan", Description: "Supplemental Retirement Acct", CurrentValue: dec.NewMoney(5933.96), ExpectedReturn: dec.NewPercent(5.54), Treatment: domain.TreatmentPortfolio},
			{ID: "other-2", Holder: "Joint", AccountType: "Alternative Investment", Description: "Private Real Estate Fund", CurrentValue: dec.NewMoney(75000), ExpectedReturn: dec.NewPercent(10), Treatment: domain.TreatmentFixedPercent, Distribution: dec.NewMoney(10)},
			{ID: "other-3", Holder: "Person 1", AccountType: "Insurance / Annuity", Description: "Cash Value Policy (Paid up 2040)", CurrentValue: dec.NewMoney(52090.19), Treatment: domain.TreatmentLumpSum},
		},
		SocialSecurity: domain.SocialSecurity{
			Person1FRABenefit: dec.NewMoney(2516),
			Person2FRABenefit: dec.Zero(),
			Person1StartAge:   67,
			Person2StartAge:   67,
		},
		Rentals: []domain.RentalProperty{
			{Address: "123 Main St", PurchasePrice: dec.NewMoney(55000), RehabCost: dec.NewMoney(5000), ClosingCost: dec.NewMoney(2000), EstimatedValue: dec.NewMoney(85000), MonthlyRent: dec.NewMoney(900), MonthlyOperatingExpense: dec.NewMoney(300)},
			{Address: "456 Oak Ave", PurchasePrice: dec.NewMoney(120000), RehabCost: dec.NewMoney(10000), ClosingCost: dec.NewMoney(4000), LoanAmount: dec.NewMoney(80000), InterestRate: dec.NewPercent(4.5), LoanTermYears: 30, PaymentsMade: 60, EstimatedValue: dec.NewMoney(175000), MonthlyRent: dec.NewMoney(1400), MonthlyOperatingExpense: dec.NewMoney(500), MonthlyPrincipalInterest: dec.NewMoney(450)},
		},
		Assets: []domain.OtherAsset{
			{Type: "Cash", Description: "Total Cash & Savings", Value: dec.NewMoney(108486.17)},
			{Type: "Vehicle", Description: "Nissan Versa", Value: dec.NewMoney(2540)},
			{Type: "Vehicle", Description: "Nissan Altima", Value: dec.NewMoney(5810)},
		},
		Liabilities: []domain.Liability{
			{Type: "Mortgage", Description: "Primary Residence Mortgage", Balance: dec.Zero()},
			{Type: "Credit Card", Description: "Total Credit Card Debt", Balance: dec.Zero()},
		},
		Assumptions: domain.Assumptions{
			InflationRate:                dec.NewPercent(3),
			PostRetirementReturn:         dec.NewPercent(4),
			PostRetirementStdDev:         dec.NewPercent(8),
			SimulationYears:              30,
			DesiredRetirementIncomeToday: dec.NewMoney(80000),
			WithdrawalRate:               dec.NewPercent(4),
			TaxRateNonRoth:               dec.NewPercent(12),
			RentalSellingCost:            dec.NewPercent(6),
		},
	}
}
