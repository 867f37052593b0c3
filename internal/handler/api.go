package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Wire types for the JSON API. They mirror the schemas in spec/openapi.yaml.

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Reason  *string `json:"reason,omitempty"`
}

// ErrorResponse wraps ErrorDetail under an "error" key.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Page is the envelope of every list endpoint.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Group is one populated group in a grouped view.
type Group[T any] struct {
	ID    int64 `json:"id"`
	Items []T   `json:"items"`
}

// DeletableResponse is returned by the /{id}/deletable endpoints.
type DeletableResponse struct {
	Deletable bool `json:"deletable"`
}

// ExpenseTotalResponse is returned by GET /trips/{id}/expenses/total.
type ExpenseTotalResponse struct {
	TripID int64           `json:"trip_id"`
	Total  decimal.Decimal `json:"total"`
}

type Destination struct {
	ID        int64     `json:"id"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	ImageRef  *string   `json:"image_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateDestinationRequest struct {
	ID       int64   `json:"id"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	ImageRef *string `json:"image_ref,omitempty"`
}

type UpdateDestinationRequest struct {
	City     *string `json:"city,omitempty"`
	Country  *string `json:"country,omitempty"`
	ImageRef *string `json:"image_ref,omitempty"`
}

type Trip struct {
	ID            int64              `json:"id"`
	DestinationID int64              `json:"destination_id"`
	Title         string             `json:"title"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	Description   *string            `json:"description,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type CreateTripRequest struct {
	ID            int64              `json:"id"`
	DestinationID int64              `json:"destination_id"`
	Title         string             `json:"title"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	Description   *string            `json:"description,omitempty"`
}

type UpdateTripRequest struct {
	DestinationID *int64              `json:"destination_id,omitempty"`
	Title         *string             `json:"title,omitempty"`
	StartDate     *openapi_types.Date `json:"start_date,omitempty"`
	EndDate       *openapi_types.Date `json:"end_date,omitempty"`
	Description   *string             `json:"description,omitempty"`
}

type Activity struct {
	ID        int64              `json:"id"`
	TripID    int64              `json:"trip_id"`
	Name      string             `json:"name"`
	Date      openapi_types.Date `json:"date"`
	Time      string             `json:"time"`
	Location  string             `json:"location"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type CreateActivityRequest struct {
	ID       int64              `json:"id"`
	TripID   int64              `json:"trip_id"`
	Name     string             `json:"name"`
	Date     openapi_types.Date `json:"date"`
	Time     string             `json:"time"`
	Location string             `json:"location"`
}

type UpdateActivityRequest struct {
	Name     *string             `json:"name,omitempty"`
	Date     *openapi_types.Date `json:"date,omitempty"`
	Time     *string             `json:"time,omitempty"`
	Location *string             `json:"location,omitempty"`
}

type Expense struct {
	ID        int64              `json:"id"`
	TripID    int64              `json:"trip_id"`
	Title     string             `json:"title"`
	Amount    decimal.Decimal    `json:"amount"`
	Date      openapi_types.Date `json:"date"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type CreateExpenseRequest struct {
	ID     int64              `json:"id"`
	TripID int64              `json:"trip_id"`
	Title  string             `json:"title"`
	Amount decimal.Decimal    `json:"amount"`
	Date   openapi_types.Date `json:"date"`
}

type UpdateExpenseRequest struct {
	Title  *string             `json:"title,omitempty"`
	Amount *decimal.Decimal    `json:"amount,omitempty"`
	Date   *openapi_types.Date `json:"date,omitempty"`
}

// TripSummary is one row of GET /export.
type TripSummary struct {
	TripID        int64              `json:"trip_id"`
	TripTitle     string             `json:"trip_title"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	DestinationID int64              `json:"destination_id"`
	City          string             `json:"city"`
	Country       string             `json:"country"`
	ActivityCount int                `json:"activity_count"`
	ExpenseCount  int                `json:"expense_count"`
	ExpenseTotal  decimal.Decimal    `json:"expense_total"`
}

// --- mapping helpers --------------------------------------------------------

func date(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

// dateOrNil unwraps an optional request date.
func dateOrNil(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func destinationToResponse(d domain.Destination) Destination {
	return Destination{
		ID:        d.ID,
		City:      d.City,
		Country:   d.Country,
		ImageRef:  d.ImageRef,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:            t.ID,
		DestinationID: t.DestinationID,
		Title:         t.Title,
		StartDate:     date(t.StartDate),
		EndDate:       date(t.EndDate),
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func activityToResponse(a domain.Activity) Activity {
	return Activity{
		ID:        a.ID,
		TripID:    a.TripID,
		Name:      a.Name,
		Date:      date(a.Date),
		Time:      a.Time,
		Location:  a.Location,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func expenseToResponse(e domain.Expense) Expense {
	return Expense{
		ID:        e.ID,
		TripID:    e.TripID,
		Title:     e.Title,
		Amount:    e.Amount,
		Date:      date(e.Date),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func summaryToResponse(r domain.TripSummary) TripSummary {
	return TripSummary{
		TripID:        r.TripID,
		TripTitle:     r.TripTitle,
		StartDate:     date(r.StartDate),
		EndDate:       date(r.EndDate),
		DestinationID: r.DestinationID,
		City:          r.City,
		Country:       r.Country,
		ActivityCount: r.ActivityCount,
		ExpenseCount:  r.ExpenseCount,
		ExpenseTotal:  r.ExpenseTotal,
	}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
