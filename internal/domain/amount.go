package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount constants
const (
	AmountScale = 2
	MaxAmount   = "1000000000000" // 1 trillion
)

var maxAmount = decimal.RequireFromString(MaxAmount)

// Exponent bounds checked before any rescaling. Rounding or comparing a
// decimal costs time and memory proportional to its exponent.
const (
	minAmountExponent = -(AmountScale + 16)
	maxAmountExponent = 13
)

// ParseAmount is the single entry point for turning user input into a
// currency amount. Empty, non-numeric, over-precise and oversized input is
// rejected; nothing is silently zeroed.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if d.IsZero() {
		return decimal.Zero, nil
	}

	switch exp := d.Exponent(); {
	case exp < minAmountExponent:
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountPrecisionTooHigh, s)
	case exp > maxAmountExponent:
		return decimal.Zero, fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	if !d.Equal(d.Round(AmountScale)) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountPrecisionTooHigh, s)
	}

	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return d, nil
}

// ValidateReceiptAmount checks that a receipt amount is non-negative.
func ValidateReceiptAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeAmount, amount.StringFixed(AmountScale))
	}
	return nil
}

// ValidatePaymentAmount checks that a payment amount is strictly positive.
func ValidatePaymentAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, amount.StringFixed(AmountScale))
	}
	return nil
}

// FormatAmount renders an amount with two-decimal display precision.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountScale)
}

// amountOrZero returns the stored amount, or zero with ok=false when the
// stored value is missing or could not be decoded.
func amountOrZero(a decimal.NullDecimal) (decimal.Decimal, bool) {
	if !a.Valid {
		return decimal.Zero, false
	}
	return a.Decimal, true
}
