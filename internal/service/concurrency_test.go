package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// TestStore_ConcurrentAddTripAndDeleteDestination races trip creation
// against deletion of their destination. Run with -race. Whatever the
// interleaving, the store must end up with no orphan trips, and each delete
// must either succeed with no trips added or fail because trips exist.
func TestStore_ConcurrentAddTripAndDeleteDestination(t *testing.T) {
	const (
		rounds  = 100
		writers = 8
	)
	ctx := context.Background()
	s := newStore(t)

	for r := range rounds {
		destID := int64(r + 1)
		_, err := s.AddDestination(ctx, domain.Destination{ID: destID, City: "Rome", Country: "Italy"})
		require.NoError(t, err)

		var (
			wg        sync.WaitGroup
			addErrs   = make([]error, writers)
			deleteErr error
		)
		wg.Add(writers + 1)
		for w := range writers {
			go func() {
				defer wg.Done()
				trip := romeTrip()
				trip.ID = destID*1000 + int64(w)
				trip.DestinationID = destID
				_, addErrs[w] = s.AddTrip(ctx, trip)
			}()
		}
		go func() {
			defer wg.Done()
			deleteErr = s.DeleteDestination(ctx, destID)
		}()
		wg.Wait()

		added := 0
		for _, err := range addErrs {
			if err == nil {
				added++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrInvalidReference, "round %d", r)
		}

		trips, err := s.ListTripsByDestination(ctx, destID)
		if deleteErr == nil {
			assert.Zero(t, added, "round %d: delete succeeded after trips were added", r)
			assert.ErrorIs(t, err, domain.ErrNotFound, "round %d: destination should be gone", r)
		} else {
			assert.ErrorIs(t, deleteErr, domain.ErrHasDependents, "round %d", r)
			require.NoError(t, err, "round %d", r)
			assert.Len(t, trips, added, "round %d", r)
			assert.Positive(t, added, "round %d: delete blocked without trips", r)
		}
	}

	all, err := s.ListTrips(ctx)
	require.NoError(t, err)
	for _, trip := range all {
		_, err := s.GetDestination(ctx, trip.DestinationID)
		assert.NoError(t, err, "trip %d references a missing destination", trip.ID)
	}
}
