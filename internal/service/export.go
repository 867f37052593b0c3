package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// TripSummaries returns one row per trip in insertion order, with the
// destination fields denormalized and the trip's activities and expenses
// reduced to counts and a total.
func (s *Store) TripSummaries(ctx context.Context) ([]domain.TripSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.TripSummaries: %w", err)
	}
	dests, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.TripSummaries: %w", err)
	}
	byID := make(map[int64]domain.Destination, len(dests))
	for _, d := range dests {
		byID[d.ID] = d
	}

	rows := make([]domain.TripSummary, 0, len(trips))
	for _, t := range trips {
		activities, err := s.activities.CountByTripID(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("service.Store.TripSummaries: %w", err)
		}
		expenses, err := s.expenses.ListByTripID(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("service.Store.TripSummaries: %w", err)
		}
		d := byID[t.DestinationID]
		rows = append(rows, domain.TripSummary{
			TripID:        t.ID,
			TripTitle:     t.Title,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			DestinationID: t.DestinationID,
			City:          d.City,
			Country:       d.Country,
			ActivityCount: activities,
			ExpenseCount:  len(expenses),
			ExpenseTotal:  sumAmounts(expenses),
		})
	}
	return rows, nil
}
