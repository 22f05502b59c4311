// Package money converts between the decimal amounts accepted at the API
// boundary and the integer minor units used everywhere else. Conversion
// happens exactly once per order so no floating-point rounding can drift
// into the ledger.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const centsPerUnit = 100

// ToCents converts a decimal major-unit amount to integer minor units.
// Amounts with sub-cent precision are rejected rather than rounded.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(decimal.NewFromInt(centsPerUnit))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %s has sub-cent precision", amount.String())
	}
	return cents.IntPart(), nil
}

// ParseCents parses a decimal string (e.g. "250.00") into minor units.
func ParseCents(s string) (int64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return ToCents(amount)
}

// FromCents converts minor units back to a decimal major-unit amount for
// display.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(centsPerUnit))
}
