// Package money provides fixed-point monetary amounts at two decimal
// places. Amounts are parsed and rounded exactly once at input time and
// summed as integer cents, so aggregation never accumulates drift.
package money

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Cents is a monetary amount in integer cents.
type Cents int64

// Parse converts a decimal string to Cents with half-up rounding on the
// third decimal place. Both "12.34" and "12,34" separators are accepted.
// Returns an error for malformed or negative values.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount must be unsigned: %q", s)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("malformed amount: %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("malformed amount: %q", s)
		}
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount: %q", s)
	}
	const maxWhole = (1<<63 - 1) / 100
	if whole > maxWhole {
		return 0, fmt.Errorf("amount out of range: %q", s)
	}

	// First two fractional digits, half-up rounding on the third.
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	return Cents(whole*100 + frac), nil
}

// MustParse is Parse for test fixtures and constants; it panics on error.
func MustParse(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the amount as a plain two-decimal string, e.g. "100.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float returns the amount as a float64 for display payloads only.
// Calculations stay in cents.
func (c Cents) Float() float64 {
	return float64(c) / 100.0
}
