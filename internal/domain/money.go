package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CentsFromDecimal converts a currency amount to whole cents, rounding half
// away from zero.
func CentsFromDecimal(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// ParseCents parses a decimal string such as "10.99" into cents.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return CentsFromDecimal(d), nil
}

// FormatCents renders cents with two fixed decimals, e.g. 1498 -> "14.98".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
