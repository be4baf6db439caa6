// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

var (
	// ErrNotFound is wrapped by stores when a trip or expense does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMemberHasExpenses is wrapped by UpdateTrip when the new roster would
	// drop someone who still pays for or shares in an expense.
	ErrMemberHasExpenses = errors.New("member still has expenses on this trip")
)

// Store defines the interface for trip and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip.
	// The trip.ID and trip.CreatedAt fields are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by ID, with its roster in insertion order.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns all trips, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// UpdateTrip replaces the name, dates and roster of an existing trip.
	// The roster must keep every payer and participant of the trip's
	// expenses; otherwise nothing is written and ErrMemberHasExpenses is returned.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip and all of its expenses.
	DeleteTrip(ctx context.Context, tripID string) error

	// LoadTripSnapshot returns a trip and its expenses read from a single
	// consistent view of the store.
	LoadTripSnapshot(ctx context.Context, tripID string) (*models.Trip, []*models.Expense, error)

	// CreateExpenseWithMembers persists a new expense and appends its
	// participants and payer to the trip roster, in one atomic write.
	// It returns the names that were not on the roster before.
	// The expense.ID and expense.CreatedAt fields are populated by the store.
	CreateExpenseWithMembers(ctx context.Context, expense *models.Expense) ([]string, error)

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByTrip returns a trip's expenses in the order they were recorded.
	ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
