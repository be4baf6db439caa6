package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is a payment from a debtor to a creditor.
type Transfer struct {
	From   Member // Person who owes
	To     Member // Person who is owed
	Amount decimal.Decimal
}

// party is a debtor or creditor with the magnitude still to be settled.
type party struct {
	member    Member
	net       decimal.Decimal
	remaining decimal.Decimal
}

// ComputeSettlements turns balances into a list of transfers that zero them.
//
// Members within Tolerance of zero are left out. Debtors are matched largest
// debt first against creditors largest credit first; ties keep input order.
// This greedy sweep keeps the number of partial payments low but is not
// guaranteed to find the minimum number of transfers.
//
// The input slice is not modified.
func ComputeSettlements(balances []Balance) []Transfer {
	negTolerance := Tolerance.Neg()

	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Net.LessThan(negTolerance):
			debtors = append(debtors, party{member: b.Member, net: b.Net, remaining: b.Net.Abs()})
		case b.Net.GreaterThan(Tolerance):
			creditors = append(creditors, party{member: b.Member, net: b.Net, remaining: b.Net})
		}
	}

	sort.SliceStable(debtors, func(a, b int) bool { return debtors[a].net.LessThan(debtors[b].net) })
	sort.SliceStable(creditors, func(a, b int) bool { return creditors[a].net.GreaterThan(creditors[b].net) })

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.GreaterThan(Tolerance) {
			transfers = append(transfers, Transfer{
				From:   debtor.member,
				To:     creditor.member,
				Amount: amount,
			})
		}

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		// Both may advance when the amounts matched exactly.
		if debtor.remaining.LessThan(Tolerance) {
			i++
		}
		if creditor.remaining.LessThan(Tolerance) {
			j++
		}
	}

	return transfers
}

// ApplyTransfers returns a copy of balances with every transfer paid out:
// the sender's net rises and the receiver's net falls by the amount.
// Transfers naming members that are not in balances are ignored.
func ApplyTransfers(balances []Balance, transfers []Transfer) []Balance {
	out := make([]Balance, len(balances))
	copy(out, balances)

	index := make(map[Member]int, len(out))
	for i, b := range out {
		index[b.Member] = i
	}
	for _, t := range transfers {
		if from, ok := index[t.From]; ok {
			out[from].Net = out[from].Net.Add(t.Amount)
		}
		if to, ok := index[t.To]; ok {
			out[to].Net = out[to].Net.Sub(t.Amount)
		}
	}
	return out
}
