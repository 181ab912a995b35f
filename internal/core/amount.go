// Package core holds the ledger's domain types and validation rules.
//
// This file contains amount parsing for user-entered values. Amounts are
// positive decimal magnitudes; the transaction type carries the sign.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered amount string to a decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for malformed input, explicit signs, zero,
// or negative values.
//
// Examples:
//
//	ParseAmount("25.50") -> 25.5, nil
//	ParseAmount("25,50") -> 25.5, nil
//	ParseAmount("-1")    -> ErrInvalidAmount
//	ParseAmount("0")     -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned positive values allowed
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
