package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/policy"
)

// AddTrip validates a trip, verifies its destination exists, then stores it.
// Returns domain.ErrValidation for bad input, domain.ErrInvalidReference if
// the destination does not exist and domain.ErrDuplicateID if the id is taken.
func (s *Store) AddTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.StartDate = domain.TruncateDate(trip.StartDate)
	trip.EndDate = domain.TruncateDate(trip.EndDate)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireDestination(ctx, trip.DestinationID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.Store.AddTrip: %w", err)
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Store.AddTrip: %w", err)
	}
	s.log.InfoContext(ctx, "trip added", "trip_id", created.ID, "destination_id", created.DestinationID)
	return created, nil
}

// GetTrip returns a single trip.
// Returns domain.ErrNotFound if it does not exist.
func (s *Store) GetTrip(ctx context.Context, id int64) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Store.GetTrip: %w", err)
	}
	return trip, nil
}

// ListTrips returns every trip in insertion order.
func (s *Store) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.ListTrips: %w", err)
	}
	return nonNil(out), nil
}

// ListTripsByDestination returns the trips of one destination in insertion order.
// Returns domain.ErrNotFound if the destination does not exist.
func (s *Store) ListTripsByDestination(ctx context.Context, destinationID int64) ([]domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.destinations.GetByID(ctx, destinationID); err != nil {
		return nil, fmt.Errorf("service.Store.ListTripsByDestination: %w", err)
	}
	out, err := s.trips.ListByDestinationID(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("service.Store.ListTripsByDestination: %w", err)
	}
	return nonNil(out), nil
}

// UpdateTrip applies the non-nil fields of p to trip id. Moving a trip to
// another destination requires that destination to exist.
func (s *Store) UpdateTrip(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Store.UpdateTrip: %w", err)
	}

	merged := p.Apply(current)
	if err := validateTrip(merged); err != nil {
		return domain.Trip{}, err
	}
	if merged.DestinationID != current.DestinationID {
		if err := s.requireDestination(ctx, merged.DestinationID); err != nil {
			return domain.Trip{}, fmt.Errorf("service.Store.UpdateTrip: %w", err)
		}
	}

	updated, err := s.trips.Update(ctx, merged)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Store.UpdateTrip: %w", err)
	}
	s.log.InfoContext(ctx, "trip updated", "trip_id", id)
	return updated, nil
}

// CanDeleteTrip reports whether no activity or expense references trip id.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *Store) CanDeleteTrip(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.tripDeletable(ctx, id); err != nil {
		if domain.BlockedReason(err) != nil {
			return false, nil
		}
		return false, fmt.Errorf("service.Store.CanDeleteTrip: %w", err)
	}
	return true, nil
}

// DeleteTrip removes trip id if it has no activities and no expenses.
func (s *Store) DeleteTrip(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tripDeletable(ctx, id); err != nil {
		s.logBlocked(ctx, "trip", id, err)
		return fmt.Errorf("service.Store.DeleteTrip: %w", err)
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.Store.DeleteTrip: %w", err)
	}
	s.log.InfoContext(ctx, "trip deleted", "trip_id", id)
	return nil
}

// tripDeletable checks existence then the dependents rule. Caller holds s.mu.
func (s *Store) tripDeletable(ctx context.Context, id int64) error {
	if _, err := s.trips.GetByID(ctx, id); err != nil {
		return err
	}
	activities, err := s.activities.CountByTripID(ctx, id)
	if err != nil {
		return err
	}
	expenses, err := s.expenses.CountByTripID(ctx, id)
	if err != nil {
		return err
	}
	return policy.TripCheck(activities, expenses)
}

// requireDestination maps a missing destination to domain.ErrInvalidReference.
// Caller holds s.mu.
func (s *Store) requireDestination(ctx context.Context, id int64) error {
	_, err := s.destinations.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: destination %d does not exist", domain.ErrInvalidReference, id)
	}
	return err
}

// parentTrip loads the trip an activity or expense points at, mapping a
// missing trip to domain.ErrInvalidReference. Caller holds s.mu.
func (s *Store) parentTrip(ctx context.Context, id int64) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, fmt.Errorf("%w: trip %d does not exist", domain.ErrInvalidReference, id)
	}
	return trip, err
}
