// Package core holds the domain types shared by the store, the report
// builders and the shell.
//
// This file contains money helpers. Amounts are shopspring decimals so the
// 90%-of-budget boundary and report totals compare and sum exactly; floats
// never appear in money math.
package core

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount rejects amounts that are not positive values written
// with exactly two decimal digits.
var ErrInvalidAmount = errors.New("invalid amount")

// twoDecimals is the accepted input shape for money: digits, a dot, and
// exactly two fractional digits.
var twoDecimals = regexp.MustCompile(`^\d+\.\d{2}$`)

// ParseAmount converts user input in 0.00 format to a decimal.
//
// The shape is strict on purpose: "12" and "12.3" are rejected, "12.30" is
// accepted. Zero is not a valid expense or budget amount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("0.00")  -> error (not positive)
//	ParseAmount("12.3")  -> error (one decimal digit)
func ParseAmount(s string) (decimal.Decimal, error) {
	if !twoDecimals.MatchString(s) {
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

// ParseStoredAmount reads an amount back out of the store. Unlike
// ParseAmount it does not re-apply the input shape rules; a value that does
// not parse at all is corrupt data and the error says so.
func ParseStoredAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// FormatCurrency renders an amount as a currency string with a dollar sign
// and exactly two decimal places. Rounding to two places happens here and
// only here, at the final display step.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
