package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	pb "github.com/mmynk/tripsplit/pkg/tripapi"
	"github.com/mmynk/tripsplit/pkg/tripapi/tripapiconnect"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	tripapiconnect.UnimplementedExpenseServiceHandler
	store   storage.Store
	metrics *metrics.Metrics
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
// m may be nil when metrics are disabled.
func NewExpenseService(store storage.Store, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{store: store, metrics: m}
}

// validateExpense normalises and checks an incoming expense.
func validateExpense(msg *pb.CreateExpenseRequest) (*models.Expense, error) {
	if msg.TripId == "" {
		return nil, fmt.Errorf("trip_id required")
	}

	amount := calculator.RoundCents(msg.Amount)
	if !amount.IsPositive() {
		return nil, calculator.ErrNonPositiveAmount
	}

	payer := strings.TrimSpace(msg.Payer)
	if payer == "" {
		return nil, calculator.ErrMissingPayer
	}

	participants := cleanNames(msg.Participants)
	if len(participants) == 0 {
		return nil, calculator.ErrNoParticipants
	}

	categoryID := msg.CategoryId
	if categoryID == "" {
		categoryID = models.DefaultCategoryID
	}
	if !models.IsValidCategory(categoryID) {
		return nil, fmt.Errorf("unknown category_id %q", categoryID)
	}

	return &models.Expense{
		TripID:       msg.TripId,
		Description:  strings.TrimSpace(msg.Description),
		Amount:       amount,
		Payer:        payer,
		CategoryID:   categoryID,
		ReceiptURL:   strings.TrimSpace(msg.ReceiptUrl),
		Participants: participants,
	}, nil
}

// CreateExpense records an expense on a trip and persists it to storage.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[pb.CreateExpenseRequest]) (*connect.Response[pb.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"trip_id", req.Msg.TripId,
		"description", req.Msg.Description,
		"amount", req.Msg.Amount,
		"payer", req.Msg.Payer,
		"participants_count", len(req.Msg.Participants),
	)

	expense, err := validateExpense(req.Msg)
	if err != nil {
		slog.Warn("CreateExpense validation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	// Parties missing from the roster are added in the same write as the
	// expense (generates ID and CreatedAt).
	added, err := s.store.CreateExpenseWithMembers(ctx, expense)
	if err != nil {
		slog.Error("CreateExpense failed", "trip_id", expense.TripID, "error", err)
		return nil, storeError(err)
	}
	if len(added) > 0 {
		slog.Info("Auto-added members to trip", "trip_id", expense.TripID, "new_members", added)
	}
	s.metrics.IncExpensesCreated()

	slog.Info("Expense created", "expense_id", expense.ID, "trip_id", expense.TripID, "amount", expense.Amount)

	return connect.NewResponse(&pb.CreateExpenseResponse{Expense: toPBExpense(expense)}), nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[pb.GetExpenseRequest]) (*connect.Response[pb.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseId)

	if req.Msg.ExpenseId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseId)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&pb.GetExpenseResponse{Expense: toPBExpense(expense)}), nil
}

// ListExpenses lists a trip's expenses in recording order, optionally only
// those a member paid for or shares in.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[pb.ListExpensesRequest]) (*connect.Response[pb.ListExpensesResponse], error) {
	tripID := req.Msg.TripId
	member := strings.TrimSpace(req.Msg.Member)
	slog.Info("ListExpenses request received", "trip_id", tripID, "member", member)

	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}

	_, expenses, err := s.store.LoadTripSnapshot(ctx, tripID)
	if err != nil {
		slog.Error("ListExpenses failed", "trip_id", tripID, "error", err)
		return nil, storeError(err)
	}

	if member != "" {
		filtered := expenses[:0]
		for _, e := range expenses {
			if e.Involves(member) {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}

	slog.Info("ListExpenses successful", "trip_id", tripID, "count", len(expenses))

	return connect.NewResponse(&pb.ListExpensesResponse{
		Expenses: toPBExpenses(expenses),
		Total:    calculator.Total(toCalcExpenses(expenses)),
	}), nil
}

// DeleteExpense removes an expense by ID.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[pb.DeleteExpenseRequest]) (*connect.Response[pb.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseId)

	if req.Msg.ExpenseId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense_id required"))
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseId); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseId)

	return connect.NewResponse(&pb.DeleteExpenseResponse{}), nil
}

// ListCategories returns the expense category catalogue.
func (s *ExpenseService) ListCategories(ctx context.Context, req *connect.Request[pb.ListCategoriesRequest]) (*connect.Response[pb.ListCategoriesResponse], error) {
	categories := make([]*pb.Category, len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = &pb.Category{Id: c.ID, Name: c.Name}
	}
	return connect.NewResponse(&pb.ListCategoriesResponse{Categories: categories}), nil
}
