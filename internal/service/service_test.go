package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	pb "github.com/mmynk/tripsplit/pkg/tripapi"
	"github.com/mmynk/tripsplit/pkg/tripapi/tripapiconnect"
)

type testEnv struct {
	trips    *tripapiconnect.TripServiceClient
	expenses *tripapiconnect.ExpenseServiceClient
	metrics  *metrics.Metrics
}

// setupTestServer serves both services over httptest against a temp SQLite database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	return serveStore(t, newSQLiteStore(t))
}

func newSQLiteStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return store
}

// serveStore serves both services over httptest against the given store.
func serveStore(t *testing.T, store storage.Store) *testEnv {
	t.Helper()

	m := metrics.New()
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	tripPath, tripHandler := tripapiconnect.NewTripServiceHandler(NewTripService(store, m), interceptors)
	expensePath, expenseHandler := tripapiconnect.NewExpenseServiceHandler(NewExpenseService(store, m), interceptors)
	mux.Handle(tripPath, tripHandler)
	mux.Handle(expensePath, expenseHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		trips:    tripapiconnect.NewTripServiceClient(server.Client(), server.URL),
		expenses: tripapiconnect.NewExpenseServiceClient(server.Client(), server.URL),
		metrics:  m,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

func (e *testEnv) createTrip(t *testing.T, name, createdBy string, members ...string) *pb.Trip {
	t.Helper()
	resp, err := e.trips.CreateTrip(context.Background(), connect.NewRequest(&pb.CreateTripRequest{
		Name:      name,
		Members:   members,
		CreatedBy: createdBy,
	}))
	require.NoError(t, err)
	return resp.Msg.Trip
}

func (e *testEnv) createExpense(t *testing.T, tripID, amount, payer string, participants ...string) *pb.Expense {
	t.Helper()
	resp, err := e.expenses.CreateExpense(context.Background(), connect.NewRequest(&pb.CreateExpenseRequest{
		TripId:       tripID,
		Description:  "expense",
		Amount:       dec(amount),
		Payer:        payer,
		Participants: participants,
	}))
	require.NoError(t, err)
	return resp.Msg.Expense
}
