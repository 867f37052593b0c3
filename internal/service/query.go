package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// TripsByDestination groups every trip under its destination id.
// Destinations without trips are absent from the map; within a group trips
// keep insertion order.
func (s *Store) TripsByDestination(ctx context.Context) (map[int64][]domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.TripsByDestination: %w", err)
	}
	return groupBy(list, func(t domain.Trip) int64 { return t.DestinationID }), nil
}

// ActivitiesByTrip groups every activity under its trip id, omitting empty groups.
func (s *Store) ActivitiesByTrip(ctx context.Context) (map[int64][]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.ActivitiesByTrip: %w", err)
	}
	return groupBy(list, func(a domain.Activity) int64 { return a.TripID }), nil
}

// ExpensesByTrip groups every expense under its trip id, omitting empty groups.
func (s *Store) ExpensesByTrip(ctx context.Context) (map[int64][]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.ExpensesByTrip: %w", err)
	}
	return groupBy(list, func(e domain.Expense) int64 { return e.TripID }), nil
}

// FindDestinations matches q case-insensitively against city and country,
// or exactly against the id. A blank q returns every destination.
func (s *Store) FindDestinations(ctx context.Context, q string) ([]domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.FindDestinations: %w", err)
	}
	m := newMatcher(q)
	return filter(list, func(d domain.Destination) bool {
		return m.id(d.ID) || m.text(d.City, d.Country)
	}), nil
}

// FindTrips matches q against the trip title, the city of the trip's
// destination, or the exact id.
func (s *Store) FindTrips(ctx context.Context, q string) ([]domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.FindTrips: %w", err)
	}
	m := newMatcher(q)
	if m.blank() {
		return nonNil(list), nil
	}

	dests, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.FindTrips: %w", err)
	}
	city := make(map[int64]string, len(dests))
	for _, d := range dests {
		city[d.ID] = d.City
	}
	return filter(list, func(t domain.Trip) bool {
		return m.id(t.ID) || m.text(t.Title, city[t.DestinationID])
	}), nil
}

// FindActivities matches q against activity name and location, or the exact id.
func (s *Store) FindActivities(ctx context.Context, q string) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.FindActivities: %w", err)
	}
	m := newMatcher(q)
	return filter(list, func(a domain.Activity) bool {
		return m.id(a.ID) || m.text(a.Name, a.Location)
	}), nil
}

// FindExpenses matches q against expense title, or the exact id.
func (s *Store) FindExpenses(ctx context.Context, q string) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.FindExpenses: %w", err)
	}
	m := newMatcher(q)
	return filter(list, func(e domain.Expense) bool {
		return m.id(e.ID) || m.text(e.Title)
	}), nil
}

// matcher holds a normalized search query.
type matcher struct {
	raw   string
	lower string
}

func newMatcher(q string) matcher {
	q = strings.TrimSpace(q)
	return matcher{raw: q, lower: strings.ToLower(q)}
}

func (m matcher) blank() bool { return m.raw == "" }

func (m matcher) id(id int64) bool {
	return m.raw == strconv.FormatInt(id, 10)
}

func (m matcher) text(fields ...string) bool {
	if m.blank() {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), m.lower) {
			return true
		}
	}
	return false
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func groupBy[T any](in []T, key func(T) int64) map[int64][]T {
	out := make(map[int64][]T)
	for _, v := range in {
		k := key(v)
		out[k] = append(out[k], v)
	}
	return out
}
