package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/handler"
)

func TestActivities_CreateNormalizesTime(t *testing.T) {
	h := newStoreHandler(t)
	seedRome(t, h)

	rec := mustDo(t, h, http.MethodPost, "/activities",
		`{"id":100,"trip_id":10,"name":"Dinner","date":"2039-06-01","time":"07:15 PM","location":"Trastevere"}`,
		http.StatusCreated)

	a := decode[handler.Activity](t, rec)
	assert.Equal(t, "19:15", a.Time)
	assert.Equal(t, "2039-06-01", a.Date.Format("2006-01-02"))
}

func TestActivities_CreateRejections(t *testing.T) {
	h := newStoreHandler(t)
	seedRome(t, h)

	cases := []struct {
		name string
		body string
		code string
	}{
		{"unknown trip", `{"id":100,"trip_id":99,"name":"X","date":"2039-06-01","time":"09:00","location":"Y"}`, "invalid_reference"},
		{"bad time", `{"id":100,"trip_id":10,"name":"X","date":"2039-06-01","time":"noon","location":"Y"}`, "validation_error"},
		{"outside trip", `{"id":100,"trip_id":10,"name":"X","date":"2041-01-01","time":"09:00","location":"Y"}`, "validation_error"},
		{"blank location", `{"id":100,"trip_id":10,"name":"X","date":"2039-06-01","time":"09:00","location":""}`, "validation_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := mustDo(t, h, http.MethodPost, "/activities", tc.body, http.StatusUnprocessableEntity)
			assert.Equal(t, tc.code, errorOf(t, rec).Code)
		})
	}

	mustDo(t, h, http.MethodGet, "/activities/100", "", http.StatusNotFound)
}

func TestActivities_PastCannotBeDeleted(t *testing.T) {
	h := newStoreHandler(t)
	seedRome(t, h)
	mustDo(t, h, http.MethodPost, "/activities",
		`{"id":100,"trip_id":10,"name":"Forum","date":"2021-03-01","time":"10:00","location":"Rome"}`,
		http.StatusCreated)

	rec := mustDo(t, h, http.MethodGet, "/activities/100/deletable", "", http.StatusOK)
	assert.False(t, decode[handler.DeletableResponse](t, rec).Deletable)

	rec = mustDo(t, h, http.MethodDelete, "/activities/100", "", http.StatusConflict)
	detail := errorOf(t, rec)
	assert.Equal(t, "deletion_blocked", detail.Code)
	require.NotNil(t, detail.Reason)
	assert.Equal(t, "past_schedule", *detail.Reason)

	mustDo(t, h, http.MethodGet, "/activities/100", "", http.StatusOK)
}

func TestActivities_UpdateAndNestedList(t *testing.T) {
	h := newStoreHandler(t)
	seedRome(t, h)
	mustDo(t, h, http.MethodPost, "/activities",
		`{"id":100,"trip_id":10,"name":"Forum","date":"2039-03-01","time":"10:00","location":"Rome"}`,
		http.StatusCreated)

	rec := mustDo(t, h, http.MethodPatch, "/activities/100", `{"time":"8:00 am","name":"Early Forum"}`, http.StatusOK)
	a := decode[handler.Activity](t, rec)
	assert.Equal(t, "08:00", a.Time)
	assert.Equal(t, "Early Forum", a.Name)

	mustDo(t, h, http.MethodPatch, "/activities/100", `{"date":"2019-12-31"}`, http.StatusUnprocessableEntity)

	rec = mustDo(t, h, http.MethodGet, "/trips/10/activities", "", http.StatusOK)
	page := decode[handler.Page[handler.Activity]](t, rec)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "2039-03-01", page.Data[0].Date.Format("2006-01-02"))

	rec = mustDo(t, h, http.MethodGet, "/activities?q=forum", "", http.StatusOK)
	assert.Equal(t, 1, decode[handler.Page[handler.Activity]](t, rec).Pagination.Total)
}
