// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into resource files
// (destination.go, trip.go, etc.) but share the same Server struct so they
// can reach its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/remote"
	"github.com/pkordes/travel-planner/backend/spec"
)

// DestinationServicer defines the destination operations the handlers use.
// Defining the interfaces here, in the consumer package, lets handler tests
// inject mocks without a store.
type DestinationServicer interface {
	AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)
	GetDestination(ctx context.Context, id int64) (domain.Destination, error)
	FindDestinations(ctx context.Context, q string) ([]domain.Destination, error)
	UpdateDestination(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error)
	CanDeleteDestination(ctx context.Context, id int64) (bool, error)
	DeleteDestination(ctx context.Context, id int64) error
}

// TripServicer defines the trip operations the handlers use.
type TripServicer interface {
	AddTrip(ctx context.Context, t domain.Trip) (domain.Trip, error)
	GetTrip(ctx context.Context, id int64) (domain.Trip, error)
	FindTrips(ctx context.Context, q string) ([]domain.Trip, error)
	ListTripsByDestination(ctx context.Context, destinationID int64) ([]domain.Trip, error)
	UpdateTrip(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error)
	CanDeleteTrip(ctx context.Context, id int64) (bool, error)
	DeleteTrip(ctx context.Context, id int64) error
}

// ActivityServicer defines the activity operations the handlers use.
type ActivityServicer interface {
	AddActivity(ctx context.Context, a domain.Activity) (domain.Activity, error)
	GetActivity(ctx context.Context, id int64) (domain.Activity, error)
	FindActivities(ctx context.Context, q string) ([]domain.Activity, error)
	ListActivitiesByTrip(ctx context.Context, tripID int64) ([]domain.Activity, error)
	UpdateActivity(ctx context.Context, id int64, p domain.ActivityPatch) (domain.Activity, error)
	CanDeleteActivity(ctx context.Context, id int64, now time.Time) (bool, error)
	DeleteActivity(ctx context.Context, id int64) error
}

// ExpenseServicer defines the expense operations the handlers use.
type ExpenseServicer interface {
	AddExpense(ctx context.Context, e domain.Expense) (domain.Expense, error)
	GetExpense(ctx context.Context, id int64) (domain.Expense, error)
	FindExpenses(ctx context.Context, q string) ([]domain.Expense, error)
	ListExpensesByTrip(ctx context.Context, tripID int64) ([]domain.Expense, error)
	ExpenseTotal(ctx context.Context, tripID int64) (decimal.Decimal, error)
	UpdateExpense(ctx context.Context, id int64, p domain.ExpensePatch) (domain.Expense, error)
	CanDeleteExpense(ctx context.Context, id int64, now time.Time) (bool, error)
	DeleteExpense(ctx context.Context, id int64) error
}

// GroupServicer answers the grouped views.
type GroupServicer interface {
	TripsByDestination(ctx context.Context) (map[int64][]domain.Trip, error)
	ActivitiesByTrip(ctx context.Context) (map[int64][]domain.Activity, error)
	ExpensesByTrip(ctx context.Context) (map[int64][]domain.Expense, error)
}

// ExportServicer produces the flat trip export.
type ExportServicer interface {
	TripSummaries(ctx context.Context) ([]domain.TripSummary, error)
}

// SyncServicer runs and reports on the remote catalogue sync.
type SyncServicer interface {
	Run(ctx context.Context) (remote.Result, error)
	Status() remote.Status
}

// Services bundles the handler dependencies. A *service.Store satisfies every
// field except Sync; a nil Sync disables the /sync endpoints.
type Services struct {
	Destinations DestinationServicer
	Trips        TripServicer
	Activities   ActivityServicer
	Expenses     ExpenseServicer
	Groups       GroupServicer
	Export       ExportServicer
	Sync         SyncServicer
}

// Server holds the handler dependencies.
type Server struct {
	destinations DestinationServicer
	trips        TripServicer
	activities   ActivityServicer
	expenses     ExpenseServicer
	groups       GroupServicer
	export       ExportServicer
	sync         SyncServicer

	now func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{
		destinations: svc.Destinations,
		trips:        svc.Trips,
		activities:   svc.Activities,
		expenses:     svc.Expenses,
		groups:       svc.Groups,
		export:       svc.Export,
		sync:         svc.Sync,
		now:          time.Now,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{})
}

// Routes returns a chi router with every endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/openapi.json", serveOpenAPIJSON)

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Post("/", s.CreateDestination)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDestination)
			r.Patch("/", s.UpdateDestination)
			r.Delete("/", s.DeleteDestination)
			r.Get("/deletable", s.CanDeleteDestination)
			r.Get("/trips", s.ListDestinationTrips)
		})
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/deletable", s.CanDeleteTrip)
			r.Get("/activities", s.ListTripActivities)
			r.Get("/expenses", s.ListTripExpenses)
			r.Get("/expenses/total", s.GetTripExpenseTotal)
		})
	})

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", s.ListActivities)
		r.Post("/", s.CreateActivity)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetActivity)
			r.Patch("/", s.UpdateActivity)
			r.Delete("/", s.DeleteActivity)
			r.Get("/deletable", s.CanDeleteActivity)
		})
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", s.ListExpenses)
		r.Post("/", s.CreateExpense)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetExpense)
			r.Patch("/", s.UpdateExpense)
			r.Delete("/", s.DeleteExpense)
			r.Get("/deletable", s.CanDeleteExpense)
		})
	})

	r.Route("/groups", func(r chi.Router) {
		r.Get("/trips-by-destination", s.GetTripsByDestination)
		r.Get("/activities-by-trip", s.GetActivitiesByTrip)
		r.Get("/expenses-by-trip", s.GetExpensesByTrip)
	})

	r.Get("/export", s.GetExport)
	r.Get("/sync", s.GetSyncStatus)
	r.Post("/sync", s.PostSync)

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

func serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := spec.JSON()
	if err != nil {
		writeServiceError(w, r, err, "openapi document")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}
