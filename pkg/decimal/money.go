package decimal

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	// Twelve is the number of months in a year.
	Twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)

	nonNumeric    = regexp.MustCompile(`[^0-9.\-]+`)
	numericPrefix = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// compoundScale bounds the digits kept while raising growth factors to a power.
const compoundScale = 18

// Money represents a monetary amount with proper financial precision.
// It decodes leniently from JSON, YAML, TOML and text: anything that does not
// parse as a number becomes zero.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a strict numeric string.
// Use ParseCurrency for user-entered text.
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(Twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(Twelve)}
}

// NonNegative returns the amount, or zero when it is negative.
func (m Money) NonNegative() decimal.Decimal {
	if m.Decimal.IsNegative() {
		return decimal.Zero
	}
	return m.Decimal
}

// ApplyTaxRate returns the amount left after removing tax at the given fractional rate.
func (m Money) ApplyTaxRate(rate decimal.Decimal) Money {
	return Money{m.Decimal.Sub(m.Decimal.Mul(rate))}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the string representation with proper formatting
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the money amount with proper currency formatting
func (m Money) Format() string {
	return "$" + m.String()
}

// UnmarshalJSON accepts numbers, numeric strings and formatted currency strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	m.Decimal = parseRaw(string(data))
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Money) UnmarshalText(text []byte) error {
	m.Decimal = ParseCurrency(string(text))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	m.Decimal = ParseCurrency(value.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (m *Money) UnmarshalTOML(v any) error {
	m.Decimal = fromAny(v)
	return nil
}

// MarshalYAML writes the amount as a plain numeric scalar.
func (m Money) MarshalYAML() (any, error) {
	return numericNode(m.Decimal), nil
}

// Percent is a whole-number percentage as entered by a user: 8 means 8%.
type Percent struct {
	decimal.Decimal
}

// NewPercent creates a Percent from a whole-number value.
func NewPercent(value float64) Percent {
	return Percent{decimal.NewFromFloat(value)}
}

// Rate converts the whole-number percent to a decimal fraction (8 -> 0.08).
// This is the only place percent inputs are divided by 100.
func (p Percent) Rate() decimal.Decimal {
	return p.Decimal.Div(hundred)
}

// RateFromNumber converts an arbitrary whole-number percentage to a fraction.
func RateFromNumber(d decimal.Decimal) decimal.Decimal {
	return Percent{d}.Rate()
}

// FractionToPercent converts a fraction back to a whole-number percentage (0.925 -> 92.5).
func FractionToPercent(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred)
}

func (p Percent) String() string {
	return p.Decimal.String()
}

// UnmarshalJSON accepts numbers and strings such as "8" or "8%".
func (p *Percent) UnmarshalJSON(data []byte) error {
	p.Decimal = parseRaw(string(data))
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Percent) UnmarshalText(text []byte) error {
	p.Decimal = ParseCurrency(string(text))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Percent) UnmarshalYAML(value *yaml.Node) error {
	p.Decimal = ParseCurrency(value.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (p *Percent) UnmarshalTOML(v any) error {
	p.Decimal = fromAny(v)
	return nil
}

// MarshalYAML writes the percent as a plain numeric scalar.
func (p Percent) MarshalYAML() (any, error) {
	return numericNode(p.Decimal), nil
}

// ParseCurrency is the lenient parser for user-entered amounts and percents.
// Currency symbols, thousands separators and percent signs are ignored; input
// that still does not start with a number yields zero.
func ParseCurrency(value string) decimal.Decimal {
	clean := nonNumeric.ReplaceAllString(value, "")
	switch clean {
	case "", ".", "-", "-.":
		return decimal.Zero
	}
	prefix := numericPrefix.FindString(clean)
	if prefix == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(prefix, "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Compound returns (1+rate)^periods. Non-positive periods yield one.
func Compound(rate decimal.Decimal, periods int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	if periods <= 0 {
		return result
	}
	base := result.Add(rate)
	for periods > 0 {
		if periods&1 == 1 {
			result = result.Mul(base).Round(compoundScale)
		}
		base = base.Mul(base).Round(compoundScale)
		periods >>= 1
	}
	return result
}

func parseRaw(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "null" {
		return decimal.Zero
	}
	return ParseCurrency(strings.Trim(raw, `"`))
}

func fromAny(v any) decimal.Decimal {
	switch x := v.(type) {
	case int64:
		return decimal.NewFromInt(x)
	case float64:
		return decimal.NewFromFloat(x)
	case string:
		return ParseCurrency(x)
	default:
		return decimal.Zero
	}
}

func numericNode(d decimal.Decimal) *yaml.Node {
	tag := "!!float"
	if d.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: d.String()}
}
