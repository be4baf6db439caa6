package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// centPlaces is the number of decimal places every amount is rounded to.
const centPlaces = 2

// Tolerance is the threshold below which a balance or transfer amount is
// treated as settled. Both the aggregator and the planner use it.
var Tolerance = decimal.New(1, -centPlaces)

var (
	// ErrNonPositiveAmount is returned for expense amounts that are zero or
	// negative once rounded to cents.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// ErrNoParticipants is returned for expenses without anyone to split among.
	ErrNoParticipants = errors.New("expense must have at least one participant")

	// ErrMissingPayer is returned for expenses without a payer.
	ErrMissingPayer = errors.New("expense must have a payer")

	// ErrUnknownMember is returned when an expense references someone who is
	// not on the roster.
	ErrUnknownMember = errors.New("member is not on the roster")

	// ErrInvalidAmount is returned by ParseAmount for malformed input.
	ErrInvalidAmount = errors.New("invalid amount")
)

// RoundCents rounds an amount half-up to whole cents.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(centPlaces)
}

// ParseAmount parses a positive currency value such as "12.34" or "12,34".
// A comma is read as the decimal separator only when it is the sole separator
// and is followed by one or two digits, so "12,345" and "1,234.56" are
// rejected rather than guessed at. The result is rounded to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if whole, frac, ok := strings.Cut(raw, ","); ok {
		if strings.Contains(whole, ".") || !isCents(frac) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		raw = whole + "." + frac
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d = RoundCents(d)
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}

// isCents reports whether frac is one or two ASCII digits.
func isCents(frac string) bool {
	if len(frac) == 0 || len(frac) > centPlaces {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Total returns the sum of all expense amounts, rounded to cents.
func Total(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(RoundCents(e.Amount))
	}
	return total
}
