package handler_test

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	tripSummaries func(ctx context.Context) ([]domain.TripSummary, error)
}

func (m *mockExportServicer) TripSummaries(ctx context.Context) ([]domain.TripSummary, error) {
	return m.tripSummaries(ctx)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

func newExportHTTPHandler(svc handler.ExportServicer) http.Handler {
	return handler.NewServer(handler.Services{Export: svc}).Routes()
}

func summaryFixture() domain.TripSummary {
	return domain.TripSummary{
		TripID:        10,
		TripTitle:     "Spring, in Rome",
		StartDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC),
		DestinationID: 1,
		City:          "Rome",
		Country:       "Italy",
		ActivityCount: 3,
		ExpenseCount:  2,
		ExpenseTotal:  decimal.RequireFromString("60.5"),
	}
}

func fixedExport(rows ...domain.TripSummary) *mockExportServicer {
	return &mockExportServicer{
		tripSummaries: func(context.Context) ([]domain.TripSummary, error) { return rows, nil },
	}
}

func TestGetExport_DefaultJSON(t *testing.T) {
	h := newExportHTTPHandler(fixedExport(summaryFixture()))

	rec := mustDo(t, h, http.MethodGet, "/export", "", http.StatusOK)

	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	rows := decode[[]handler.TripSummary](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rome", rows[0].City)
	assert.Equal(t, 3, rows[0].ActivityCount)
	assert.True(t, rows[0].ExpenseTotal.Equal(decimal.RequireFromString("60.5")))
}

func TestGetExport_EmptyJSONIsArray(t *testing.T) {
	h := newExportHTTPHandler(fixedExport())

	rec := mustDo(t, h, http.MethodGet, "/export", "", http.StatusOK)

	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetExport_CSV(t *testing.T) {
	h := newExportHTTPHandler(fixedExport(summaryFixture()))

	rec := mustDo(t, h, http.MethodGet, "/export?format=csv", "", http.StatusOK)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "trip_id", records[0][0])
	assert.Equal(t, []string{
		"10", "Spring, in Rome", "2025-04-01", "2025-04-09",
		"1", "Rome", "Italy", "3", "2", "60.50",
	}, records[1])
}

func TestGetExport_BadFormat(t *testing.T) {
	h := newExportHTTPHandler(fixedExport())

	rec := mustDo(t, h, http.MethodGet, "/export?format=xml", "", http.StatusUnprocessableEntity)

	assert.Equal(t, "validation_error", errorOf(t, rec).Code)
}

func TestGetExport_ServiceError(t *testing.T) {
	h := newExportHTTPHandler(&mockExportServicer{
		tripSummaries: func(context.Context) ([]domain.TripSummary, error) {
			return nil, errors.New("connection refused")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := errorOf(t, rec)
	assert.Equal(t, "internal_error", detail.Code)
	assert.NotContains(t, detail.Message, "connection refused")
}
