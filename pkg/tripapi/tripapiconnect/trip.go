// Package tripapiconnect wires the tripsplit.v1 services to Connect handlers and clients.
package tripapiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	pb "github.com/mmynk/tripsplit/pkg/tripapi"
)

const (
	// TripServiceName is the fully-qualified name of the TripService service.
	TripServiceName = "tripsplit.v1.TripService"
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "tripsplit.v1.ExpenseService"
)

// Procedure paths, as they appear on the wire.
const (
	TripServiceCreateTripProcedure          = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure             = "/tripsplit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure           = "/tripsplit.v1.TripService/ListTrips"
	TripServiceUpdateTripProcedure          = "/tripsplit.v1.TripService/UpdateTrip"
	TripServiceDeleteTripProcedure          = "/tripsplit.v1.TripService/DeleteTrip"
	TripServiceGetTripBalancesProcedure     = "/tripsplit.v1.TripService/GetTripBalances"
	TripServiceCalculateSettlementProcedure = "/tripsplit.v1.TripService/CalculateSettlement"

	ExpenseServiceCreateExpenseProcedure  = "/tripsplit.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure     = "/tripsplit.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure   = "/tripsplit.v1.ExpenseService/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure  = "/tripsplit.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListCategoriesProcedure = "/tripsplit.v1.ExpenseService/ListCategories"
)

// TripServiceHandler is implemented by the server side of TripService.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[pb.CreateTripRequest]) (*connect.Response[pb.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[pb.GetTripRequest]) (*connect.Response[pb.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[pb.ListTripsRequest]) (*connect.Response[pb.ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[pb.UpdateTripRequest]) (*connect.Response[pb.UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[pb.DeleteTripRequest]) (*connect.Response[pb.DeleteTripResponse], error)
	GetTripBalances(context.Context, *connect.Request[pb.GetTripBalancesRequest]) (*connect.Response[pb.GetTripBalancesResponse], error)
	CalculateSettlement(context.Context, *connect.Request[pb.CalculateSettlementRequest]) (*connect.Response[pb.CalculateSettlementResponse], error)
}

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[pb.CreateExpenseRequest]) (*connect.Response[pb.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[pb.GetExpenseRequest]) (*connect.Response[pb.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[pb.ListExpensesRequest]) (*connect.Response[pb.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[pb.DeleteExpenseRequest]) (*connect.Response[pb.DeleteExpenseResponse], error)
	ListCategories(context.Context, *connect.Request[pb.ListCategoriesRequest]) (*connect.Response[pb.ListCategoriesResponse], error)
}

// NewTripServiceHandler builds an HTTP handler for TripService. It returns the
// path to mount it on.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(TripServiceCreateTripProcedure, connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...))
	mux.Handle(TripServiceGetTripProcedure, connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...))
	mux.Handle(TripServiceListTripsProcedure, connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...))
	mux.Handle(TripServiceUpdateTripProcedure, connect.NewUnaryHandler(TripServiceUpdateTripProcedure, svc.UpdateTrip, opts...))
	mux.Handle(TripServiceDeleteTripProcedure, connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...))
	mux.Handle(TripServiceGetTripBalancesProcedure, connect.NewUnaryHandler(TripServiceGetTripBalancesProcedure, svc.GetTripBalances, opts...))
	mux.Handle(TripServiceCalculateSettlementProcedure, connect.NewUnaryHandler(TripServiceCalculateSettlementProcedure, svc.CalculateSettlement, opts...))
	return "/" + TripServiceName + "/", mux
}

// NewExpenseServiceHandler builds an HTTP handler for ExpenseService. It
// returns the path to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceGetExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(ExpenseServiceListCategoriesProcedure, connect.NewUnaryHandler(ExpenseServiceListCategoriesProcedure, svc.ListCategories, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{withJSON()}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{withJSON()}, opts...)
}

// TripServiceClient is a client for TripService.
type TripServiceClient struct {
	createTrip          *connect.Client[pb.CreateTripRequest, pb.CreateTripResponse]
	getTrip             *connect.Client[pb.GetTripRequest, pb.GetTripResponse]
	listTrips           *connect.Client[pb.ListTripsRequest, pb.ListTripsResponse]
	updateTrip          *connect.Client[pb.UpdateTripRequest, pb.UpdateTripResponse]
	deleteTrip          *connect.Client[pb.DeleteTripRequest, pb.DeleteTripResponse]
	getTripBalances     *connect.Client[pb.GetTripBalancesRequest, pb.GetTripBalancesResponse]
	calculateSettlement *connect.Client[pb.CalculateSettlementRequest, pb.CalculateSettlementResponse]
}

// NewTripServiceClient creates a TripService client for the server at baseURL.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &TripServiceClient{
		createTrip:          connect.NewClient[pb.CreateTripRequest, pb.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:             connect.NewClient[pb.GetTripRequest, pb.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:           connect.NewClient[pb.ListTripsRequest, pb.ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		updateTrip:          connect.NewClient[pb.UpdateTripRequest, pb.UpdateTripResponse](httpClient, baseURL+TripServiceUpdateTripProcedure, opts...),
		deleteTrip:          connect.NewClient[pb.DeleteTripRequest, pb.DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
		getTripBalances:     connect.NewClient[pb.GetTripBalancesRequest, pb.GetTripBalancesResponse](httpClient, baseURL+TripServiceGetTripBalancesProcedure, opts...),
		calculateSettlement: connect.NewClient[pb.CalculateSettlementRequest, pb.CalculateSettlementResponse](httpClient, baseURL+TripServiceCalculateSettlementProcedure, opts...),
	}
}

func (c *TripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[pb.CreateTripRequest]) (*connect.Response[pb.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTrip(ctx context.Context, req *connect.Request[pb.GetTripRequest]) (*connect.Response[pb.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListTrips(ctx context.Context, req *connect.Request[pb.ListTripsRequest]) (*connect.Response[pb.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *TripServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[pb.UpdateTripRequest]) (*connect.Response[pb.UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[pb.DeleteTripRequest]) (*connect.Response[pb.DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTripBalances(ctx context.Context, req *connect.Request[pb.GetTripBalancesRequest]) (*connect.Response[pb.GetTripBalancesResponse], error) {
	return c.getTripBalances.CallUnary(ctx, req)
}

func (c *TripServiceClient) CalculateSettlement(ctx context.Context, req *connect.Request[pb.CalculateSettlementRequest]) (*connect.Response[pb.CalculateSettlementResponse], error) {
	return c.calculateSettlement.CallUnary(ctx, req)
}

// ExpenseServiceClient is a client for ExpenseService.
type ExpenseServiceClient struct {
	createExpense  *connect.Client[pb.CreateExpenseRequest, pb.CreateExpenseResponse]
	getExpense     *connect.Client[pb.GetExpenseRequest, pb.GetExpenseResponse]
	listExpenses   *connect.Client[pb.ListExpensesRequest, pb.ListExpensesResponse]
	deleteExpense  *connect.Client[pb.DeleteExpenseRequest, pb.DeleteExpenseResponse]
	listCategories *connect.Client[pb.ListCategoriesRequest, pb.ListCategoriesResponse]
}

// NewExpenseServiceClient creates an ExpenseService client for the server at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		createExpense:  connect.NewClient[pb.CreateExpenseRequest, pb.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:     connect.NewClient[pb.GetExpenseRequest, pb.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:   connect.NewClient[pb.ListExpensesRequest, pb.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		deleteExpense:  connect.NewClient[pb.DeleteExpenseRequest, pb.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listCategories: connect.NewClient[pb.ListCategoriesRequest, pb.ListCategoriesResponse](httpClient, baseURL+ExpenseServiceListCategoriesProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[pb.CreateExpenseRequest]) (*connect.Response[pb.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[pb.GetExpenseRequest]) (*connect.Response[pb.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[pb.ListExpensesRequest]) (*connect.Response[pb.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[pb.DeleteExpenseRequest]) (*connect.Response[pb.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListCategories(ctx context.Context, req *connect.Request[pb.ListCategoriesRequest]) (*connect.Response[pb.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

// errUnimplemented is returned by the Unimplemented handlers.
var errUnimplemented = errors.New("not implemented")

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[pb.CreateTripRequest]) (*connect.Response[pb.CreateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[pb.GetTripRequest]) (*connect.Response[pb.GetTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) ListTrips(context.Context, *connect.Request[pb.ListTripsRequest]) (*connect.Response[pb.ListTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) UpdateTrip(context.Context, *connect.Request[pb.UpdateTripRequest]) (*connect.Response[pb.UpdateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) DeleteTrip(context.Context, *connect.Request[pb.DeleteTripRequest]) (*connect.Response[pb.DeleteTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) GetTripBalances(context.Context, *connect.Request[pb.GetTripBalancesRequest]) (*connect.Response[pb.GetTripBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedTripServiceHandler) CalculateSettlement(context.Context, *connect.Request[pb.CalculateSettlementRequest]) (*connect.Response[pb.CalculateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[pb.CreateExpenseRequest]) (*connect.Response[pb.CreateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[pb.GetExpenseRequest]) (*connect.Response[pb.GetExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[pb.ListExpensesRequest]) (*connect.Response[pb.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[pb.DeleteExpenseRequest]) (*connect.Response[pb.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedExpenseServiceHandler) ListCategories(context.Context, *connect.Request[pb.ListCategoriesRequest]) (*connect.Response[pb.ListCategoriesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}
