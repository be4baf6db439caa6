package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/calculator"
)

const lisbonSheet = `
members: [Alice, Bob, Carol]
expenses:
  - description: Dinner
    amount: "90.00"
    payer: Alice
    participants: [Alice, Bob, Carol]
  - description: Taxi
    amount: 30
    payer: Bob
    participants: [Bob, Carol]
`

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSettle_PrintsBalancesAndPlan(t *testing.T) {
	path := writeSheet(t, lisbonSheet)

	out, err := runCLI(t, "", "settle", "-f", path, "--verify")
	require.NoError(t, err)

	assert.Contains(t, out, "Total spent: 120.00")
	assert.Contains(t, out, "MEMBER")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "-45.00")
	assert.Contains(t, out, "Carol pays Alice 45.00")
	assert.Contains(t, out, "Bob pays Alice 15.00")
	assert.Less(t, strings.Index(out, "Carol pays Alice"), strings.Index(out, "Bob pays Alice"), "largest debtor first")
	assert.Contains(t, out, "Verified")
}

func TestSettle_FromStdin(t *testing.T) {
	out, err := runCLI(t, lisbonSheet, "settle", "-f", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Carol pays Alice 45.00")
	assert.NotContains(t, out, "Verified")
}

func TestSettle_SettledTrip(t *testing.T) {
	path := writeSheet(t, `
members: [A, B]
expenses:
  - {amount: "40", payer: A, participants: [A, B]}
  - {amount: "40", payer: B, participants: [A, B]}
`)

	out, err := runCLI(t, "", "settle", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Everyone is settled up.")
}

func TestSettle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  string
	}{
		{
			name:  "unknown member",
			sheet: "members: [A]\nexpenses:\n  - {amount: \"10\", payer: Z, participants: [A]}\n",
			want:  calculator.ErrUnknownMember.Error(),
		},
		{
			name:  "bad amount",
			sheet: "expenses:\n  - {amount: ten, payer: A, participants: [A]}\n",
			want:  "invalid amount",
		},
		{
			name:  "not yaml",
			sheet: "members: [A\n",
			want:  "parsing sheet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", "settle", "-f", writeSheet(t, tt.sheet))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSettle_RequiresFile(t *testing.T) {
	_, err := runCLI(t, "", "settle")
	require.Error(t, err)

	_, err = runCLI(t, "", "settle", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading sheet")
}

func TestSheet_RosterDerivedFromExpenses(t *testing.T) {
	sheet := &Sheet{Expenses: []SheetExpense{
		{Amount: "10", Payer: "Carol", Participants: []string{"Alice", "Carol"}},
		{Amount: "5", Payer: "Bob", Participants: []string{"Alice", "Dave"}},
	}}
	assert.Equal(t, []string{"Carol", "Alice", "Bob", "Dave"}, sheet.Roster())

	sheet.Members = []string{"Zed"}
	assert.Equal(t, []string{"Zed"}, sheet.Roster())
}

func TestSheet_CalculatorExpenses(t *testing.T) {
	sheet := &Sheet{Expenses: []SheetExpense{{Amount: "12,5", Payer: "A", Participants: []string{"A"}}}}
	expenses, err := sheet.CalculatorExpenses()
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "12.50", expenses[0].Amount.StringFixed(2))
}

func TestSheet_CalculatorExpenses_AmbiguousComma(t *testing.T) {
	for _, amount := range []string{"12,345", "1,234.56"} {
		sheet := &Sheet{Expenses: []SheetExpense{{Amount: amount, Payer: "A", Participants: []string{"A"}}}}
		_, err := sheet.CalculatorExpenses()
		require.ErrorIs(t, err, calculator.ErrInvalidAmount, amount)
	}
}
