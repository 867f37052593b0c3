package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// seedDestination inserts the fixture destination so trips have a parent.
func seedDestination(t *testing.T, repos repo.Repos) {
	t.Helper()
	_, err := repos.Destinations.Create(context.Background(), destinationFixture())
	require.NoError(t, err)
}

func TestPgTripRepo_Create(t *testing.T) {
	repos := newPgRepos(t)
	seedDestination(t, repos)
	ctx := context.Background()

	input := tripFixture()
	got, err := repos.Trips.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.ID, got.ID)
	assert.Equal(t, input.DestinationID, got.DestinationID)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	require.NotNil(t, got.Description)
	assert.Equal(t, *input.Description, *got.Description)
}

func TestPgTripRepo_Create_NilDescription(t *testing.T) {
	repos := newPgRepos(t)
	seedDestination(t, repos)

	input := tripFixture()
	input.Description = nil

	got, err := repos.Trips.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestPgTripRepo_Create_MissingDestination(t *testing.T) {
	repos := newPgRepos(t)

	_, err := repos.Trips.Create(context.Background(), tripFixture())

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestPgTripRepo_ListByDestination_InsertionOrder(t *testing.T) {
	repos := newPgRepos(t)
	seedDestination(t, repos)
	ctx := context.Background()

	second := tripFixture()
	second.ID = tripID + 1
	second.Title = "Second visit"
	// Insert the higher id first: order must follow insertion, not id.
	_, err := repos.Trips.Create(ctx, second)
	require.NoError(t, err)
	_, err = repos.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	trips, err := repos.Trips.ListByDestinationID(ctx, destID)

	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, second.ID, trips[0].ID)
	assert.Equal(t, tripID, trips[1].ID)

	n, err := repos.Trips.CountByDestinationID(ctx, destID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPgTripRepo_Update(t *testing.T) {
	repos := newPgRepos(t)
	seedDestination(t, repos)
	ctx := context.Background()

	created, err := repos.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Title = "Renamed"
	created.EndDate = created.EndDate.AddDate(0, 0, 2)
	updated, err := repos.Trips.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.EndDate.Equal(created.EndDate))
}

func TestPgTripRepo_Update_NotFound(t *testing.T) {
	repos := newPgRepos(t)

	_, err := repos.Trips.Update(context.Background(), tripFixture())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPgTripRepo_Delete(t *testing.T) {
	repos := newPgRepos(t)
	seedDestination(t, repos)
	ctx := context.Background()

	_, err := repos.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, repos.Trips.Delete(ctx, tripID))

	_, err = repos.Trips.GetByID(ctx, tripID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}
