package commands

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/tripsplit/internal/calculator"
)

// Sheet is a trip described in YAML:
//
//	members: [Alice, Bob, Carol]
//	expenses:
//	  - description: Dinner
//	    amount: "90.00"
//	    payer: Alice
//	    participants: [Alice, Bob, Carol]
//
// When members is omitted the roster is every payer and participant in
// order of first appearance.
type Sheet struct {
	Members  []string       `yaml:"members"`
	Expenses []SheetExpense `yaml:"expenses"`
}

// SheetExpense is one expense line. Amount accepts "12.34", "12,34" or a bare number.
type SheetExpense struct {
	Description  string   `yaml:"description"`
	Amount       string   `yaml:"amount"`
	Payer        string   `yaml:"payer"`
	Participants []string `yaml:"participants"`
}

// LoadSheet reads a sheet from a file, or from stdin when path is "-".
func LoadSheet(path string, stdin io.Reader) (*Sheet, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parsing sheet: %w", err)
	}
	return &sheet, nil
}

// Roster returns the explicit member list, or one derived from the expenses.
func (s *Sheet) Roster() []string {
	if len(s.Members) > 0 {
		return s.Members
	}
	seen := map[string]bool{}
	var roster []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			roster = append(roster, name)
		}
	}
	for _, e := range s.Expenses {
		add(e.Payer)
		for _, p := range e.Participants {
			add(p)
		}
	}
	return roster
}

// CalculatorExpenses parses the expense amounts.
func (s *Sheet) CalculatorExpenses() ([]calculator.Expense, error) {
	expenses := make([]calculator.Expense, len(s.Expenses))
	for i, e := range s.Expenses {
		amount, err := calculator.ParseAmount(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %d (%s): %w", i, e.Description, err)
		}
		expenses[i] = calculator.Expense{
			Amount:       amount,
			Payer:        e.Payer,
			Participants: e.Participants,
		}
	}
	return expenses, nil
}
