package decimal

import (
	"gopkg.in/yaml.v3"
)

// Int is a whole number entered by a user, such as an age or a year.
// It decodes as leniently as Money: "50", "50.9" and "age 50" all read as 50
// (fractions are truncated) and anything non-numeric becomes zero.
type Int int

// NewIntFromString parses user-entered text the way the decoders do.
func NewIntFromString(value string) Int {
	return Int(ParseCurrency(value).IntPart())
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (i *Int) UnmarshalJSON(data []byte) error {
	*i = Int(parseRaw(string(data)).IntPart())
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Int) UnmarshalText(text []byte) error {
	*i = NewIntFromString(string(text))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Int) UnmarshalYAML(value *yaml.Node) error {
	*i = NewIntFromString(value.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (i *Int) UnmarshalTOML(v any) error {
	*i = Int(fromAny(v).IntPart())
	return nil
}
