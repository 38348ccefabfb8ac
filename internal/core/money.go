// Package core provides money parsing and handling utilities.
//
// This file contains the amount parser used at the entry points and the
// fixed two-decimal formatting used by exports.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered decimal string into an amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Zero is allowed; negative values, signs and malformed input are not.
//
// Examples:
//
//	ParseAmount("120.50") -> 120.5, nil
//	ParseAmount("25,00")  -> 25, nil
//	ParseAmount("")       -> 0, ErrEmptyAmount
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
