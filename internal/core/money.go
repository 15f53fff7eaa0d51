package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmountDigits bounds the digits of an amount once written out in full,
// so "1e5000000" cannot expand into millions of characters.
const MaxAmountDigits = 32

var (
	// ErrInvalidAmount is returned when an amount string is not a number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountTooLarge is returned when an amount needs more than
	// MaxAmountDigits digits to display.
	ErrAmountTooLarge = errors.New("amount has too many digits")
)

// ParseAmount converts user input into a decimal amount.
//
// Only a dot decimal separator is accepted. Signs and exponents are allowed
// and there is no range check: "-3", "1e3" and "0" are all valid numbers.
// Empty or non-numeric input returns ErrInvalidAmount and numbers wider than
// MaxAmountDigits return ErrAmountTooLarge, so that callers can treat both
// as absent rather than zero.
//
// Examples:
//
//	ParseAmount("80")    -> 80, nil
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
//	ParseAmount("12,50") -> 0, ErrInvalidAmount
//	ParseAmount("1e99")  -> 0, ErrAmountTooLarge
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, ",") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if displayDigits(d) > MaxAmountDigits {
		return decimal.Zero, ErrAmountTooLarge
	}
	return d, nil
}

// displayDigits counts the digits String would print, from the coefficient
// and exponent only.
func displayDigits(d decimal.Decimal) int {
	n := d.NumDigits()
	exp := int(d.Exponent())
	switch {
	case exp >= 0:
		return n + exp
	case -exp >= n:
		return -exp + 1
	default:
		return n
	}
}

// FormatAmount renders an amount as the currency symbol followed by the raw
// numeric value, without rounding or grouping ("$80", "$12.5").
func FormatAmount(symbol string, amount decimal.Decimal) string {
	return symbol + amount.String()
}
