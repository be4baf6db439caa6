// Package tripapi defines the request and response messages of the
// tripsplit.v1 RPC services.
//
// Amounts are decimals and travel as JSON strings ("12.50") so no precision
// is lost between client and server.
package tripapi

import "github.com/shopspring/decimal"

// Trip is a trip with its ordered member roster.
type Trip struct {
	Id        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Members   []string `json:"members"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
}

// Expense is a recorded expense.
type Expense struct {
	Id           string          `json:"id"`
	TripId       string          `json:"trip_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Payer        string          `json:"payer"`
	CategoryId   string          `json:"category_id"`
	ReceiptUrl   string          `json:"receipt_url,omitempty"`
	Participants []string        `json:"participants"`
	CreatedAt    int64           `json:"created_at"`
}

// ExpenseInput is an expense submitted for a stateless calculation.
type ExpenseInput struct {
	Amount       decimal.Decimal `json:"amount"`
	Payer        string          `json:"payer"`
	Participants []string        `json:"participants"`
}

// Category labels an expense.
type Category struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// MemberBalance is one member's position.
type MemberBalance struct {
	Member string          `json:"member"`
	Paid   decimal.Decimal `json:"paid"`
	Owed   decimal.Decimal `json:"owed"`
	Net    decimal.Decimal `json:"net"` // Positive = owed money, Negative = owes money
}

// Transfer is one payment of a settlement plan.
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type CreateTripRequest struct {
	Name      string   `json:"name"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Members   []string `json:"members"`
	CreatedBy string   `json:"created_by"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripId string `json:"trip_id"`
}

// GetTripResponse carries the trip together with its expenses and current balances.
type GetTripResponse struct {
	Trip          *Trip            `json:"trip"`
	Expenses      []*Expense       `json:"expenses"`
	TotalExpenses decimal.Decimal  `json:"total_expenses"`
	Balances      []*MemberBalance `json:"balances"`
}

type ListTripsRequest struct {
	// Member restricts the result to trips the member belongs to or created.
	Member string `json:"member,omitempty"`
}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type UpdateTripRequest struct {
	TripId    string   `json:"trip_id"`
	Name      string   `json:"name"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Members   []string `json:"members"`
}

type UpdateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripId string `json:"trip_id"`
}

type DeleteTripResponse struct{}

type GetTripBalancesRequest struct {
	TripId string `json:"trip_id"`
}

type GetTripBalancesResponse struct {
	Balances      []*MemberBalance `json:"balances"`
	Settlements   []*Transfer      `json:"settlements"`
	TotalExpenses decimal.Decimal  `json:"total_expenses"`
}

// CalculateSettlementRequest computes a plan without touching storage.
type CalculateSettlementRequest struct {
	Members  []string        `json:"members"`
	Expenses []*ExpenseInput `json:"expenses"`
}

type CalculateSettlementResponse struct {
	Balances    []*MemberBalance `json:"balances"`
	Settlements []*Transfer      `json:"settlements"`
}

type CreateExpenseRequest struct {
	TripId       string          `json:"trip_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Payer        string          `json:"payer"`
	CategoryId   string          `json:"category_id,omitempty"`
	ReceiptUrl   string          `json:"receipt_url,omitempty"`
	Participants []string        `json:"participants"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseId string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	TripId string `json:"trip_id"`
	// Member keeps only expenses the member paid for or shares in.
	Member string `json:"member,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense      `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}

type DeleteExpenseRequest struct {
	ExpenseId string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}
