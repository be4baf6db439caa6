package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	pb "github.com/mmynk/tripsplit/pkg/tripapi"
	"github.com/mmynk/tripsplit/pkg/tripapi/tripapiconnect"
)

const dateLayout = "2006-01-02"

// TripService implements the Connect TripService
type TripService struct {
	tripapiconnect.UnimplementedTripServiceHandler
	store   storage.Store
	metrics *metrics.Metrics
}

// NewTripService creates a new TripService with the given storage backend.
// m may be nil when metrics are disabled.
func NewTripService(store storage.Store, m *metrics.Metrics) *TripService {
	return &TripService{store: store, metrics: m}
}

// validateDates checks that optional start/end dates parse and are in order.
func validateDates(start, end string) error {
	var startAt, endAt time.Time
	var err error
	if start != "" {
		if startAt, err = time.Parse(dateLayout, start); err != nil {
			return fmt.Errorf("start_date must be YYYY-MM-DD: %q", start)
		}
	}
	if end != "" {
		if endAt, err = time.Parse(dateLayout, end); err != nil {
			return fmt.Errorf("end_date must be YYYY-MM-DD: %q", end)
		}
	}
	if start != "" && end != "" && endAt.Before(startAt) {
		return fmt.Errorf("end_date %s is before start_date %s", end, start)
	}
	return nil
}

// CreateTrip creates a new trip. The creator is always put on the roster.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[pb.CreateTripRequest]) (*connect.Response[pb.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
		"created_by", req.Msg.CreatedBy,
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name required"))
	}
	if err := validateDates(req.Msg.StartDate, req.Msg.EndDate); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	createdBy := strings.TrimSpace(req.Msg.CreatedBy)
	members := cleanNames(req.Msg.Members)
	if createdBy != "" && !containsName(members, createdBy) {
		members = append(members, createdBy)
	}

	trip := &models.Trip{
		Name:      name,
		StartDate: req.Msg.StartDate,
		EndDate:   req.Msg.EndDate,
		Members:   members,
		CreatedBy: createdBy,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "members", trip.Members)

	return connect.NewResponse(&pb.CreateTripResponse{Trip: toPBTrip(trip)}), nil
}

// GetTrip retrieves a trip with its expenses and current balances.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[pb.GetTripRequest]) (*connect.Response[pb.GetTripResponse], error) {
	tripID := req.Msg.TripId
	slog.Info("GetTrip request received", "trip_id", tripID)

	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}

	trip, expenses, err := s.store.LoadTripSnapshot(ctx, tripID)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", tripID, "error", err)
		return nil, storeError(err)
	}

	calcExpenses := toCalcExpenses(expenses)
	balances, err := calculator.ComputeBalances(trip.Members, calcExpenses)
	if err != nil {
		// Stored expenses only reference roster members, so this is a data problem.
		slog.Error("GetTrip failed - balance calculation", "trip_id", tripID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("GetTrip successful", "trip_id", trip.ID, "expenses_count", len(expenses))

	return connect.NewResponse(&pb.GetTripResponse{
		Trip:          toPBTrip(trip),
		Expenses:      toPBExpenses(expenses),
		TotalExpenses: calculator.Total(calcExpenses),
		Balances:      toPBBalances(balances),
	}), nil
}

// ListTrips retrieves all trips, or only those a member belongs to or created.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[pb.ListTripsRequest]) (*connect.Response[pb.ListTripsResponse], error) {
	member := strings.TrimSpace(req.Msg.Member)
	slog.Info("ListTrips request received", "member", member)

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*pb.Trip, 0, len(trips))
	for _, trip := range trips {
		if member != "" && !trip.HasMember(member) && trip.CreatedBy != member {
			continue
		}
		out = append(out, toPBTrip(trip))
	}

	slog.Info("ListTrips successful", "count", len(out))

	return connect.NewResponse(&pb.ListTripsResponse{Trips: out}), nil
}

// UpdateTrip replaces a trip's name, dates and roster. Members who still
// appear on an expense cannot be dropped from the roster.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[pb.UpdateTripRequest]) (*connect.Response[pb.UpdateTripResponse], error) {
	tripID := req.Msg.TripId
	slog.Info("UpdateTrip request received",
		"trip_id", tripID,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name required"))
	}
	if err := validateDates(req.Msg.StartDate, req.Msg.EndDate); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	existing, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		slog.Error("UpdateTrip failed", "trip_id", tripID, "error", err)
		return nil, storeError(err)
	}

	members := cleanNames(req.Msg.Members)
	if existing.CreatedBy != "" && !containsName(members, existing.CreatedBy) {
		members = append(members, existing.CreatedBy)
	}

	trip := &models.Trip{
		ID:        tripID,
		Name:      name,
		StartDate: req.Msg.StartDate,
		EndDate:   req.Msg.EndDate,
		Members:   members,
	}
	// The store rejects a roster that drops an expense party.
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		if errors.Is(err, storage.ErrMemberHasExpenses) {
			slog.Warn("UpdateTrip rejected", "trip_id", tripID, "error", err)
		} else {
			slog.Error("UpdateTrip failed", "trip_id", tripID, "error", err)
		}
		return nil, storeError(err)
	}

	// Fetch updated trip to get CreatedBy and CreatedAt
	updated, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		slog.Error("Failed to fetch updated trip", "trip_id", tripID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Trip updated", "trip_id", tripID)

	return connect.NewResponse(&pb.UpdateTripResponse{Trip: toPBTrip(updated)}), nil
}

// DeleteTrip removes a trip and all of its expenses.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[pb.DeleteTripRequest]) (*connect.Response[pb.DeleteTripResponse], error) {
	tripID := req.Msg.TripId
	slog.Info("DeleteTrip request received", "trip_id", tripID)

	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}

	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", tripID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Trip deleted", "trip_id", tripID)

	return connect.NewResponse(&pb.DeleteTripResponse{}), nil
}

// GetTripBalances calculates balances across all expenses of a trip and the
// transfers that settle them.
func (s *TripService) GetTripBalances(ctx context.Context, req *connect.Request[pb.GetTripBalancesRequest]) (*connect.Response[pb.GetTripBalancesResponse], error) {
	tripID := req.Msg.TripId
	slog.Info("GetTripBalances request received", "trip_id", tripID)

	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_id required"))
	}

	trip, expenses, err := s.store.LoadTripSnapshot(ctx, tripID)
	if err != nil {
		slog.Error("GetTripBalances failed - could not load trip", "trip_id", tripID, "error", err)
		return nil, storeError(err)
	}

	calcExpenses := toCalcExpenses(expenses)
	balances, err := calculator.ComputeBalances(trip.Members, calcExpenses)
	if err != nil {
		slog.Error("GetTripBalances failed - calculation error", "trip_id", tripID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	transfers := calculator.ComputeSettlements(balances)
	s.metrics.ObserveSettlement(len(transfers))

	slog.Info("GetTripBalances successful",
		"trip_id", tripID,
		"expenses_count", len(expenses),
		"members_count", len(balances),
		"transfers_count", len(transfers),
	)

	return connect.NewResponse(&pb.GetTripBalancesResponse{
		Balances:      toPBBalances(balances),
		Settlements:   toPBTransfers(transfers),
		TotalExpenses: calculator.Total(calcExpenses),
	}), nil
}

// CalculateSettlement computes balances and a settlement plan for the given
// roster and expenses without touching storage.
func (s *TripService) CalculateSettlement(ctx context.Context, req *connect.Request[pb.CalculateSettlementRequest]) (*connect.Response[pb.CalculateSettlementResponse], error) {
	slog.Info("CalculateSettlement request received",
		"members_count", len(req.Msg.Members),
		"expenses_count", len(req.Msg.Expenses),
	)

	expenses := make([]calculator.Expense, 0, len(req.Msg.Expenses))
	for i, e := range req.Msg.Expenses {
		if e == nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense %d: missing", i))
		}
		slog.Debug("Processing expense",
			"index", i+1,
			"amount", e.Amount,
			"payer", e.Payer,
			"participants", e.Participants,
		)
		expenses = append(expenses, calculator.Expense{
			Amount:       e.Amount,
			Payer:        e.Payer,
			Participants: e.Participants,
		})
	}

	balances, err := calculator.ComputeBalances(req.Msg.Members, expenses)
	if err != nil {
		slog.Warn("CalculateSettlement rejected", "error", err)
		return nil, calcError(err)
	}
	transfers := calculator.ComputeSettlements(balances)
	s.metrics.ObserveSettlement(len(transfers))

	slog.Info("CalculateSettlement successful",
		"members_count", len(balances),
		"transfers_count", len(transfers),
	)

	return connect.NewResponse(&pb.CalculateSettlementResponse{
		Balances:    toPBBalances(balances),
		Settlements: toPBTransfers(transfers),
	}), nil
}
