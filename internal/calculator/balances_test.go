package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func netOf(t *testing.T, balances []Balance, member Member) decimal.Decimal {
	t.Helper()
	for _, b := range balances {
		if b.Member == member {
			return b.Net
		}
	}
	t.Fatalf("no balance for %s", member)
	return decimal.Zero
}

func sumNet(balances []Balance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Net)
	}
	return sum
}

func TestComputeBalances_SinglePair(t *testing.T) {
	balances, err := ComputeBalances([]Member{"A", "B"}, []Expense{
		{Amount: dec("100"), Payer: "A", Participants: []Member{"A", "B"}},
	})
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, "A", balances[0].Member)
	assert.Equal(t, "100.00", balances[0].Paid.StringFixed(2))
	assert.Equal(t, "50.00", balances[0].Owed.StringFixed(2))
	assert.Equal(t, "50.00", balances[0].Net.StringFixed(2))

	assert.Equal(t, "B", balances[1].Member)
	assert.True(t, balances[1].Paid.IsZero())
	assert.Equal(t, "-50.00", balances[1].Net.StringFixed(2))
}

func TestComputeBalances_ThreeWay(t *testing.T) {
	balances, err := ComputeBalances([]Member{"A", "B", "C"}, []Expense{
		{Amount: dec("90"), Payer: "A", Participants: []Member{"A", "B", "C"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "60.00", netOf(t, balances, "A").StringFixed(2))
	assert.Equal(t, "-30.00", netOf(t, balances, "B").StringFixed(2))
	assert.Equal(t, "-30.00", netOf(t, balances, "C").StringFixed(2))
}

func TestComputeBalances_PayerNotParticipant(t *testing.T) {
	balances, err := ComputeBalances([]Member{"A", "B", "C"}, []Expense{
		{Amount: dec("40"), Payer: "A", Participants: []Member{"B", "C"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "40.00", netOf(t, balances, "A").StringFixed(2))
	assert.Equal(t, "-20.00", netOf(t, balances, "B").StringFixed(2))
	assert.Equal(t, "-20.00", netOf(t, balances, "C").StringFixed(2))
}

func TestComputeBalances_CancellingExpenses(t *testing.T) {
	balances, err := ComputeBalances([]Member{"A", "B", "C"}, []Expense{
		{Amount: dec("50"), Payer: "A", Participants: []Member{"A", "B"}},
		{Amount: dec("50"), Payer: "B", Participants: []Member{"A", "B"}},
		{Amount: dec("30"), Payer: "C", Participants: []Member{"A", "C"}},
	})
	require.NoError(t, err)

	assert.True(t, netOf(t, balances, "B").IsZero())
	assert.Equal(t, "-15.00", netOf(t, balances, "A").StringFixed(2))
	assert.Equal(t, "15.00", netOf(t, balances, "C").StringFixed(2))

	for _, tr := range ComputeSettlements(balances) {
		assert.NotEqual(t, "B", tr.From)
		assert.NotEqual(t, "B", tr.To)
	}
}

func TestComputeBalances_RosterWithoutExpenses(t *testing.T) {
	balances, err := ComputeBalances([]Member{"A", "B", "A"}, nil)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	for _, b := range balances {
		assert.True(t, b.Net.IsZero())
	}
}

func TestComputeBalances_EmptyRoster(t *testing.T) {
	balances, err := ComputeBalances(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, balances)
	assert.Empty(t, ComputeSettlements(balances))
}

func TestComputeBalances_Errors(t *testing.T) {
	roster := []Member{"A", "B"}
	tests := []struct {
		name    string
		expense Expense
		wantErr error
	}{
		{
			name:    "zero amount",
			expense: Expense{Amount: decimal.Zero, Payer: "A", Participants: []Member{"A", "B"}},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "negative amount",
			expense: Expense{Amount: dec("-10"), Payer: "A", Participants: []Member{"A"}},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "no participants",
			expense: Expense{Amount: dec("10"), Payer: "A"},
			wantErr: ErrNoParticipants,
		},
		{
			name:    "missing payer",
			expense: Expense{Amount: dec("10"), Participants: []Member{"A"}},
			wantErr: ErrMissingPayer,
		},
		{
			name:    "payer off roster",
			expense: Expense{Amount: dec("10"), Payer: "Zed", Participants: []Member{"A"}},
			wantErr: ErrUnknownMember,
		},
		{
			name:    "participant off roster",
			expense: Expense{Amount: dec("10"), Payer: "A", Participants: []Member{"A", "Zed"}},
			wantErr: ErrUnknownMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(roster, []Expense{tt.expense})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, balances)
		})
	}
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	roster := []Member{"Ann", "Ben", "Cat", "Dan", "Eve", "Fay", "Gus"}

	for round := 0; round < 50; round++ {
		t.Run(fmt.Sprintf("round %d", round), func(t *testing.T) {
			var expenses []Expense
			count := 1 + rng.Intn(40)
			for n := 0; n < count; n++ {
				cents := 1 + rng.Int63n(100000)
				perm := rng.Perm(len(roster))
				participants := make([]Member, 1+rng.Intn(len(roster)))
				for k := range participants {
					participants[k] = roster[perm[k]]
				}
				expenses = append(expenses, Expense{
					Amount:       decimal.New(cents, -2),
					Payer:        roster[rng.Intn(len(roster))],
					Participants: participants,
				})
			}

			balances, err := ComputeBalances(roster, expenses)
			require.NoError(t, err)
			require.Len(t, balances, len(roster))
			assert.True(t, sumNet(balances).IsZero(), "sum of nets = %s", sumNet(balances))

			// Applying the plan leaves only dust. Every suppressed sub-tolerance
			// step can strand at most one cent, so the bound scales with roster size.
			bound := Tolerance.Mul(decimal.NewFromInt(int64(2 * len(roster))))
			settled := ApplyTransfers(balances, ComputeSettlements(balances))
			for _, b := range settled {
				assert.True(t, b.Net.Abs().LessThanOrEqual(bound), "%s left with %s", b.Member, b.Net)
			}
			assert.True(t, sumNet(settled).IsZero())
		})
	}
}
