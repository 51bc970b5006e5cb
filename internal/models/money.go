package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in minor units (cents). All tip pool arithmetic
// runs on Money so allocations stay cent-exact; decimal strings are only
// parsed and formatted at the boundary.
type Money int64

var centFactor = decimal.NewFromInt(100)

// ParseMoney converts a decimal string like "100.01" into Money.
// Amounts with more than two fractional digits are rejected rather than
// rounded, since a sub-cent value in a form field is always a data entry error.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Mul(centFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", s)
	}
	return Money(cents.IntPart()), nil
}

// String renders the amount with exactly two fractional digits, e.g. "7.50".
func (m Money) String() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}

// Decimal returns the amount as a shopspring decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) IsNegative() bool { return m < 0 }

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Sub(o Money) Money { return m - o }

// MarshalJSON emits a plain JSON number with two fractional digits so
// existing clients keep receiving numeric monetary fields.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// Value stores Money as its integer minor-unit count.
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan reads Money back from an integer minor-unit column.
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*m = Money(v)
		return nil
	case nil:
		*m = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
}

// UnmarshalJSON accepts both numeric and string representations.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = unquoted
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
