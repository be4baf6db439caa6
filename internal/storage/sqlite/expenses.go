package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateExpenseWithMembers persists a new expense and its participants, and
// appends any participant or payer missing from the trip roster. The roster
// rows and the expense commit together or not at all.
func (s *SQLiteStore) CreateExpenseWithMembers(ctx context.Context, expense *models.Expense) ([]string, error) {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Touch the trip row first: it takes the write lock and confirms the trip exists.
	res, err := tx.ExecContext(ctx, "UPDATE trips SET name = name WHERE id = ?", expense.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("trip %s: %w", expense.TripID, storage.ErrNotFound)
	}

	var next int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM trip_members WHERE trip_id = ?",
		expense.TripID,
	).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster position: %w", err)
	}

	parties := make([]string, 0, len(expense.Participants)+1)
	parties = append(parties, expense.Participants...)
	parties = append(parties, expense.Payer)
	added, err := insertMembers(ctx, tx, expense.TripID, parties, next)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, amount, payer, category_id, receipt_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.Description, expense.Amount.String(),
		expense.Payer, expense.CategoryID, nullString(expense.ReceiptURL), expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	pos := 0
	for _, member := range expense.Participants {
		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO expense_participants (expense_id, member, position) VALUES (?, ?, ?)",
			expense.ID, member, pos,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert expense participant: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			pos++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return added, nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, description, amount, payer, category_id, receipt_url, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := loadParticipants(ctx, s.db, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByTrip retrieves all expenses for a trip in recording order.
func (s *SQLiteStore) ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, tripID)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

func listExpenses(ctx context.Context, q queryer, tripID string) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, trip_id, description, amount, payer, category_id, receipt_url, created_at
		 FROM expenses WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by trip: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := loadParticipants(ctx, q, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var receiptURL sql.NullString
	if err := row.Scan(&expense.ID, &expense.TripID, &expense.Description, &expense.Amount,
		&expense.Payer, &expense.CategoryID, &receiptURL, &expense.CreatedAt); err != nil {
		return nil, err
	}
	expense.ReceiptURL = receiptURL.String
	return expense, nil
}

func loadParticipants(ctx context.Context, q queryer, expense *models.Expense) error {
	rows, err := q.QueryContext(ctx,
		"SELECT member FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return fmt.Errorf("failed to scan expense participant: %w", err)
		}
		expense.Participants = append(expense.Participants, member)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense participants: %w", err)
	}
	return nil
}
