package models

import "github.com/shopspring/decimal"

// Expense represents money paid by one member and split equally among participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Description is a short label (e.g., "Dinner", "Taxi to airport").
	Description string

	// Amount is the total paid, in cents precision.
	Amount decimal.Decimal

	// Payer is the member who paid.
	Payer string

	// CategoryID references one of Categories.
	CategoryID string

	// ReceiptURL optionally points to an uploaded receipt image.
	ReceiptURL string

	// Participants is the ordered list of members splitting the cost.
	// The payer is not required to be on it.
	Participants []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Involves reports whether member paid for or shares in the expense.
func (e *Expense) Involves(member string) bool {
	if e.Payer == member {
		return true
	}
	for _, p := range e.Participants {
		if p == member {
			return true
		}
	}
	return false
}
