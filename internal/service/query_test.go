package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// seedCatalog stores two destinations, three trips under the first and one
// activity and expense under the first trip. Paris has no trips.
func seedCatalog(t *testing.T) *service.Store {
	t.Helper()
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, true)

	_, err := s.AddDestination(ctx, domain.Destination{ID: 2, City: "Paris", Country: "France"})
	require.NoError(t, err)
	for _, trip := range []domain.Trip{
		{ID: 11, DestinationID: 1, Title: "Summer", StartDate: day(2025, 7, 1), EndDate: day(2025, 7, 10)},
		{ID: 12, DestinationID: 1, Title: "Winter", StartDate: day(2025, 12, 1), EndDate: day(2025, 12, 5)},
	} {
		_, err := s.AddTrip(ctx, trip)
		require.NoError(t, err)
	}
	return s
}

func TestStore_TripsByDestination(t *testing.T) {
	s := seedCatalog(t)

	groups, err := s.TripsByDestination(context.Background())

	require.NoError(t, err)
	require.Len(t, groups, 1, "destinations without trips are omitted")
	ids := make([]int64, 0, 3)
	for _, trip := range groups[1] {
		ids = append(ids, trip.ID)
	}
	assert.Equal(t, []int64{10, 11, 12}, ids)
	_, ok := groups[2]
	assert.False(t, ok)
}

func TestStore_ChildGroupings(t *testing.T) {
	s := seedCatalog(t)
	ctx := context.Background()

	acts, err := s.ActivitiesByTrip(ctx)
	require.NoError(t, err)
	assert.Len(t, acts, 1)
	assert.Len(t, acts[10], 1)

	exps, err := s.ExpensesByTrip(ctx)
	require.NoError(t, err)
	assert.Len(t, exps, 1)
	assert.Equal(t, "Dinner", exps[10][0].Title)
}

func TestStore_FindDestinations(t *testing.T) {
	s := seedCatalog(t)
	ctx := context.Background()

	cases := []struct {
		q    string
		want []int64
	}{
		{"", []int64{1, 2}},
		{"   ", []int64{1, 2}},
		{"ROM", []int64{1}},
		{"france", []int64{2}},
		{"2", []int64{2}},
		{"tokyo", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.q, func(t *testing.T) {
			got, err := s.FindDestinations(ctx, tc.q)
			require.NoError(t, err)
			require.NotNil(t, got)
			ids := make([]int64, 0, len(got))
			for _, d := range got {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestStore_FindTrips(t *testing.T) {
	s := seedCatalog(t)
	ctx := context.Background()

	byTitle, err := s.FindTrips(ctx, "win")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, int64(12), byTitle[0].ID)

	byCity, err := s.FindTrips(ctx, "rome")
	require.NoError(t, err)
	assert.Len(t, byCity, 3)

	byID, err := s.FindTrips(ctx, "11")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Summer", byID[0].Title)

	none, err := s.FindTrips(ctx, "paris")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_FindActivitiesAndExpenses(t *testing.T) {
	s := seedCatalog(t)
	ctx := context.Background()

	acts, err := s.FindActivities(ctx, "colosseo")
	require.NoError(t, err)
	assert.Len(t, acts, 1)

	acts, err = s.FindActivities(ctx, "100")
	require.NoError(t, err)
	assert.Len(t, acts, 1)

	exps, err := s.FindExpenses(ctx, "DIN")
	require.NoError(t, err)
	assert.Len(t, exps, 1)

	exps, err = s.FindExpenses(ctx, "hotel")
	require.NoError(t, err)
	assert.Empty(t, exps)
}

func TestStore_TripSummaries(t *testing.T) {
	s := seedCatalog(t)
	ctx := context.Background()

	extra := dinner()
	extra.ID, extra.Amount = 1001, decimal.RequireFromString("7.50")
	_, err := s.AddExpense(ctx, extra)
	require.NoError(t, err)

	rows, err := s.TripSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, int64(10), first.TripID)
	assert.Equal(t, "Rome", first.City)
	assert.Equal(t, "Italy", first.Country)
	assert.Equal(t, 1, first.ActivityCount)
	assert.Equal(t, 2, first.ExpenseCount)
	assert.Equal(t, "50.00", first.ExpenseTotal.StringFixed(2))

	assert.Equal(t, 0, rows[1].ExpenseCount)
	assert.True(t, rows[1].ExpenseTotal.IsZero())
}
