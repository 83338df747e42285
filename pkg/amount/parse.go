// Package amount parses human-readable currency amounts such as "$1.5M",
// "500K" or "1,000,000".
package amount

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat is wrapped by every parse failure.
var ErrInvalidFormat = errors.New("invalid number format")

const (
	thousand = 1_000
	million  = 1_000_000
)

// Parse converts a human-readable amount into a float. Dollar signs and
// thousands separators are ignored and a trailing K or M (any case) scales
// the value.
func Parse(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToUpper(value), "M"):
		multiplier = million
		value = value[:len(value)-1]
	case strings.HasSuffix(strings.ToUpper(value), "K"):
		multiplier = thousand
		value = value[:len(value)-1]
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidFormat, raw)
	}
	parsed *= multiplier
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidFormat, raw)
	}
	return parsed, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constant inputs.
func MustParse(raw string) float64 {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Value is a flag.Value holding a parsed amount.
type Value struct {
	amount float64
	set    bool
}

// NewValue returns a Value initialised to def.
func NewValue(def float64) *Value {
	return &Value{amount: def}
}

// String implements flag.Value.
func (v *Value) String() string {
	if v == nil {
		return "0"
	}
	return strconv.FormatFloat(v.amount, 'f', -1, 64)
}

// Set implements flag.Value.
func (v *Value) Set(raw string) error {
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	v.amount = parsed
	v.set = true
	return nil
}

// Float returns the current amount.
func (v *Value) Float() float64 {
	return v.amount
}

// IsSet reports whether Set was called successfully.
func (v *Value) IsSet() bool {
	return v.set
}

// Amount is a float that decodes from either a JSON number or a
// human-readable JSON string.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*a = Amount(parsed)
		return nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, string(trimmed))
	}
	*a = Amount(f)
	return nil
}
