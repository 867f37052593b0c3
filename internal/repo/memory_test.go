package repo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

func TestMemoryDestinationRepo_CreateGet(t *testing.T) {
	r := repo.NewMemoryDestinationRepo()
	ctx := context.Background()

	created, err := r.Create(ctx, destinationFixture())
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, destID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMemoryDestinationRepo_Create_DuplicateLeavesOriginal(t *testing.T) {
	r := repo.NewMemoryDestinationRepo()
	ctx := context.Background()

	_, err := r.Create(ctx, destinationFixture())
	require.NoError(t, err)

	dup := destinationFixture()
	dup.City = "Paris"
	_, err = r.Create(ctx, dup)

	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	got, err := r.GetByID(ctx, destID)
	require.NoError(t, err)
	assert.Equal(t, "Rome", got.City)

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryRepos_NotFound(t *testing.T) {
	repos := repo.NewMemoryRepos()
	ctx := context.Background()

	_, err := repos.Destinations.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repos.Trips.Update(ctx, tripFixture())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repos.Activities.Delete(ctx, 1), domain.ErrNotFound)
	assert.ErrorIs(t, repos.Expenses.Delete(ctx, 1), domain.ErrNotFound)
}

func TestMemoryTripRepo_ListIsInsertionOrder(t *testing.T) {
	r := repo.NewMemoryTripRepo()
	ctx := context.Background()

	for _, id := range []int64{30, 10, 20} {
		trip := tripFixture()
		trip.ID = id
		_, err := r.Create(ctx, trip)
		require.NoError(t, err)
	}

	trips, err := r.List(ctx)

	require.NoError(t, err)
	var ids []int64
	for _, tr := range trips {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []int64{30, 10, 20}, ids)
}

func TestMemoryTripRepo_IndexFollowsDestinationChanges(t *testing.T) {
	r := repo.NewMemoryTripRepo()
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	n, err := r.CountByDestinationID(ctx, destID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	created.DestinationID = destID + 1
	_, err = r.Update(ctx, created)
	require.NoError(t, err)

	n, _ = r.CountByDestinationID(ctx, destID)
	assert.Equal(t, 0, n, "old destination should lose the trip")
	moved, err := r.ListByDestinationID(ctx, destID+1)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, tripID, moved[0].ID)

	require.NoError(t, r.Delete(ctx, tripID))
	n, _ = r.CountByDestinationID(ctx, destID+1)
	assert.Equal(t, 0, n)
}

func TestMemoryActivityRepo_UpdateKeepsTripAndCreatedAt(t *testing.T) {
	r := repo.NewMemoryActivityRepo()
	ctx := context.Background()

	created, err := r.Create(ctx, activityFixture())
	require.NoError(t, err)

	changed := created
	changed.TripID = 12345
	changed.Name = "Vatican museums"
	updated, err := r.Update(ctx, changed)

	require.NoError(t, err)
	assert.Equal(t, tripID, updated.TripID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Vatican museums", updated.Name)
}

func TestMemoryExpenseRepo_ListByTripID_Empty(t *testing.T) {
	r := repo.NewMemoryExpenseRepo()

	got, err := r.ListByTripID(context.Background(), 77)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryDestinationRepo_ConcurrentCreates(t *testing.T) {
	r := repo.NewMemoryDestinationRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Every goroutine races for the same id; exactly one may win.
			_, err := r.Create(ctx, destinationFixture())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrDuplicateID):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 49, dup)
}
