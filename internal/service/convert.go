package service

import (
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	pb "github.com/mmynk/tripsplit/pkg/tripapi"
)

// storeError maps a storage failure to a Connect error.
func storeError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrMemberHasExpenses):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// calcError maps a calculator failure to a Connect error. Invalid input is the
// caller's fault; anything else is ours.
func calcError(err error) *connect.Error {
	switch {
	case errors.Is(err, calculator.ErrNonPositiveAmount),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrMissingPayer),
		errors.Is(err, calculator.ErrUnknownMember),
		errors.Is(err, calculator.ErrInvalidAmount):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// cleanNames trims names and drops blanks and repeats, keeping first-seen order.
func cleanNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func toPBTrip(trip *models.Trip) *pb.Trip {
	members := trip.Members
	if members == nil {
		members = []string{}
	}
	return &pb.Trip{
		Id:        trip.ID,
		Name:      trip.Name,
		StartDate: trip.StartDate,
		EndDate:   trip.EndDate,
		Members:   members,
		CreatedBy: trip.CreatedBy,
		CreatedAt: trip.CreatedAt,
	}
}

func toPBExpense(e *models.Expense) *pb.Expense {
	return &pb.Expense{
		Id:           e.ID,
		TripId:       e.TripID,
		Description:  e.Description,
		Amount:       e.Amount,
		Payer:        e.Payer,
		CategoryId:   e.CategoryID,
		ReceiptUrl:   e.ReceiptURL,
		Participants: e.Participants,
		CreatedAt:    e.CreatedAt,
	}
}

func toPBExpenses(expenses []*models.Expense) []*pb.Expense {
	out := make([]*pb.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toPBExpense(e)
	}
	return out
}

func toCalcExpenses(expenses []*models.Expense) []calculator.Expense {
	out := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = calculator.Expense{
			Amount:       e.Amount,
			Payer:        e.Payer,
			Participants: e.Participants,
		}
	}
	return out
}

func toPBBalances(balances []calculator.Balance) []*pb.MemberBalance {
	out := make([]*pb.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = &pb.MemberBalance{
			Member: b.Member,
			Paid:   b.Paid,
			Owed:   b.Owed,
			Net:    b.Net,
		}
	}
	return out
}

func toPBTransfers(transfers []calculator.Transfer) []*pb.Transfer {
	out := make([]*pb.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = &pb.Transfer{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount,
		}
	}
	return out
}
