// Package core provides the banking domain model shared by the catalog,
// the query engine and the session layer.
//
// This file contains money parsing and formatting. All amounts are stored
// as integer USD cents; floats appear only at the display boundary.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in USD cents. Negative values are legal for running
// balances and credit accounts.
type Money struct {
	Cents int64
}

// Validate rejects non-positive amounts. Use it for user-entered amounts
// (transfers, donations); fixture balances may be negative.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Dollars returns the dollar value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// DecimalString renders the amount in its minimal decimal form: "2000" for
// 200000 cents, "15.99" for 1599, "-4580" for -458000. This is the form the
// search predicate matches against and the form written to CSV exports.
func (m Money) DecimalString() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(whole, 10))
	if rem != 0 {
		if rem%10 == 0 {
			b.WriteString("." + strconv.FormatInt(rem/10, 10))
		} else {
			frac := strconv.FormatInt(rem, 10)
			if rem < 10 {
				frac = "0" + frac
			}
			b.WriteString("." + frac)
		}
	}
	return b.String()
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Accepts both dot (12.34) and comma
// (12,34) separators. Only positive amounts are accepted.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12,34") -> 1234, nil
//	ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
