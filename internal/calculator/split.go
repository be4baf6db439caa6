package calculator

import (
	"github.com/shopspring/decimal"
)

// Share is one participant's part of an expense.
type Share struct {
	Member Member
	Amount decimal.Decimal
}

// SplitEqually divides amount among participants in whole cents.
//
// Every participant owes amount/n truncated to cents. The cents left over are
// handed out one at a time to participants in list order, so the shares
// always add up to exactly the (cent-rounded) amount. Duplicate participants
// are collapsed.
func SplitEqually(amount decimal.Decimal, participants []Member) ([]Share, error) {
	amount = RoundCents(amount)
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	members := uniqueMembers(participants)
	if len(members) == 0 {
		return nil, ErrNoParticipants
	}

	base, rem := amount.QuoRem(decimal.NewFromInt(int64(len(members))), centPlaces)
	extra := rem.Shift(centPlaces).IntPart()

	shares := make([]Share, len(members))
	for i, m := range members {
		owed := base
		if int64(i) < extra {
			owed = owed.Add(Tolerance)
		}
		shares[i] = Share{Member: m, Amount: owed}
	}
	return shares, nil
}

// uniqueMembers drops empty and repeated ids, keeping first occurrences.
func uniqueMembers(in []Member) []Member {
	seen := make(map[Member]bool, len(in))
	out := make([]Member, 0, len(in))
	for _, m := range in {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
