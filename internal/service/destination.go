package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/policy"
)

// AddDestination validates and stores a new destination.
// Returns domain.ErrValidation for bad input and domain.ErrDuplicateID if the
// id is already taken; in both cases nothing is stored.
func (s *Store) AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.destinations.Create(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Store.AddDestination: %w", err)
	}
	s.log.InfoContext(ctx, "destination added", "destination_id", created.ID, "city", created.City)
	return created, nil
}

// GetDestination returns a single destination.
// Returns domain.ErrNotFound if it does not exist.
func (s *Store) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Store.GetDestination: %w", err)
	}
	return d, nil
}

// ListDestinations returns every destination in insertion order.
// Always returns a non-nil slice.
func (s *Store) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.ListDestinations: %w", err)
	}
	return nonNil(out), nil
}

// UpdateDestination applies the non-nil fields of p to destination id.
// The merged record is validated before anything is written.
func (s *Store) UpdateDestination(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Store.UpdateDestination: %w", err)
	}

	merged := p.Apply(current)
	if err := validateDestination(merged); err != nil {
		return domain.Destination{}, err
	}

	updated, err := s.destinations.Update(ctx, merged)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Store.UpdateDestination: %w", err)
	}
	s.log.InfoContext(ctx, "destination updated", "destination_id", id)
	return updated, nil
}

// CanDeleteDestination reports whether no trip references destination id.
// Returns domain.ErrNotFound if the destination does not exist.
func (s *Store) CanDeleteDestination(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.destinationDeletable(ctx, id); err != nil {
		if domain.BlockedReason(err) != nil {
			return false, nil
		}
		return false, fmt.Errorf("service.Store.CanDeleteDestination: %w", err)
	}
	return true, nil
}

// DeleteDestination removes destination id if no trip references it.
// Returns a domain.ErrDeletionBlocked / domain.ErrHasDependents error when
// trips remain, and domain.ErrNotFound if it does not exist.
func (s *Store) DeleteDestination(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.destinationDeletable(ctx, id); err != nil {
		s.logBlocked(ctx, "destination", id, err)
		return fmt.Errorf("service.Store.DeleteDestination: %w", err)
	}
	if err := s.destinations.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.Store.DeleteDestination: %w", err)
	}
	s.log.InfoContext(ctx, "destination deleted", "destination_id", id)
	return nil
}

// destinationDeletable checks existence then the dependents rule.
// Caller holds s.mu.
func (s *Store) destinationDeletable(ctx context.Context, id int64) error {
	if _, err := s.destinations.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.trips.CountByDestinationID(ctx, id)
	if err != nil {
		return err
	}
	return policy.DestinationCheck(n)
}

// logBlocked records a refused deletion at warn level.
func (s *Store) logBlocked(ctx context.Context, kind string, id int64, err error) {
	reason := domain.BlockedReason(err)
	if reason == nil {
		return
	}
	s.log.WarnContext(ctx, "deletion blocked", "kind", kind, "id", id, "reason", reason.Error())
}
