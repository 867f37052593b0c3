// Package service contains the Travel Data Store: the business rules that sit
// between callers and the storage backends. The Store validates input,
// enforces referential integrity and the deletion policy, and answers the
// grouped and search queries. No SQL lives here; the Store depends on the
// repo interfaces, not on a backend.
package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// Store is the single entry point for reading and mutating travel data.
//
// Every operation runs under one lock: mutations take it exclusively, reads
// share it. A check-then-act sequence such as "count trips, then delete the
// destination" therefore cannot interleave with another caller's add, and no
// reader ever observes half of a multi-step mutation.
type Store struct {
	mu sync.RWMutex

	destinations repo.DestinationRepo
	trips        repo.TripRepo
	activities   repo.ActivityRepo
	expenses     repo.ExpenseRepo

	now                  func() time.Time
	loc                  *time.Location
	enforceActivityRange bool
	log                  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of "now" for delete operations.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the time zone in which activity times and expense dates
// are interpreted. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithActivityRangeCheck toggles the rule that an activity's date must fall
// within its trip's dates. On by default.
func WithActivityRangeCheck(enabled bool) Option {
	return func(s *Store) { s.enforceActivityRange = enabled }
}

// WithLogger sets the logger used for mutation and policy events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore constructs a Store over the given repositories.
func NewStore(repos repo.Repos, opts ...Option) *Store {
	s := &Store{
		destinations:         repos.Destinations,
		trips:                repos.Trips,
		activities:           repos.Activities,
		expenses:             repos.Expenses,
		now:                  time.Now,
		loc:                  time.UTC,
		enforceActivityRange: true,
		log:                  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the time zone the store evaluates schedules in.
func (s *Store) Location() *time.Location {
	return s.loc
}

// nonNil returns an empty slice in place of nil so callers can always range
// over and JSON-encode list results.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
