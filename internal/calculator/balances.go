// Package calculator computes trip balances and the transfers that settle them.
//
// All money is handled as shopspring decimals rounded to cents, so the sum of
// net balances for any expense set is exactly zero.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Member identifies a person on a trip.
type Member = string

// Expense is the minimal information needed for balance calculations.
type Expense struct {
	Amount       decimal.Decimal
	Payer        Member
	Participants []Member
}

// Balance represents the balance information for one trip member.
type Balance struct {
	Member Member
	Paid   decimal.Decimal // Total amount paid across all expenses
	Owed   decimal.Decimal // Sum of this member's shares
	Net    decimal.Decimal // Positive = owed money, Negative = owes money
}

// ComputeBalances aggregates who paid what and who owes what.
//
// The result has exactly one Balance per roster member, in roster order.
// Repeated roster ids are collapsed. Expenses referencing a payer or
// participant outside the roster are rejected with ErrUnknownMember.
func ComputeBalances(members []Member, expenses []Expense) ([]Balance, error) {
	roster := uniqueMembers(members)
	balances := make([]Balance, len(roster))
	index := make(map[Member]int, len(roster))
	for i, m := range roster {
		balances[i] = Balance{Member: m, Paid: decimal.Zero, Owed: decimal.Zero}
		index[m] = i
	}

	for n, exp := range expenses {
		if exp.Payer == "" {
			return nil, fmt.Errorf("expense %d: %w", n, ErrMissingPayer)
		}
		payer, ok := index[exp.Payer]
		if !ok {
			return nil, fmt.Errorf("expense %d: payer %q: %w", n, exp.Payer, ErrUnknownMember)
		}

		shares, err := SplitEqually(exp.Amount, exp.Participants)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", n, err)
		}
		for _, s := range shares {
			if _, ok := index[s.Member]; !ok {
				return nil, fmt.Errorf("expense %d: participant %q: %w", n, s.Member, ErrUnknownMember)
			}
		}

		balances[payer].Paid = balances[payer].Paid.Add(RoundCents(exp.Amount))
		for _, s := range shares {
			i := index[s.Member]
			balances[i].Owed = balances[i].Owed.Add(s.Amount)
		}
	}

	for i := range balances {
		balances[i].Net = balances[i].Paid.Sub(balances[i].Owed)
	}
	return balances, nil
}
