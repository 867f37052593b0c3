package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// newStoreHandler wires every endpoint to a fresh in-memory store.
func newStoreHandler(t *testing.T) http.Handler {
	t.Helper()
	store := service.NewStore(repo.NewMemoryRepos(),
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return handler.NewServer(handler.Services{
		Destinations: store,
		Trips:        store,
		Activities:   store,
		Expenses:     store,
		Groups:       store,
		Export:       store,
	}).Routes()
}

// do sends a request with an optional JSON body and returns the recorder.
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// mustDo is do plus a status assertion.
func mustDo(t *testing.T, h http.Handler, method, path, body string, want int) *httptest.ResponseRecorder {
	t.Helper()
	rec := do(t, h, method, path, body)
	require.Equal(t, want, rec.Code, "%s %s: %s", method, path, rec.Body.String())
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// errorOf decodes an error response.
func errorOf(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error
}

// seedRome creates destination 1 and trip 10 spanning 2020 to 2040 so that
// activity dates in tests are always in range.
func seedRome(t *testing.T, h http.Handler) {
	t.Helper()
	mustDo(t, h, http.MethodPost, "/destinations",
		`{"id":1,"city":"Rome","country":"Italy"}`, http.StatusCreated)
	mustDo(t, h, http.MethodPost, "/trips",
		`{"id":10,"destination_id":1,"title":"Long stay","start_date":"2020-01-01","end_date":"2040-12-31"}`,
		http.StatusCreated)
}
