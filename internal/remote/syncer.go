package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ErrSyncInFlight is returned by Run while another run is still going.
var ErrSyncInFlight = errors.New("sync already in flight")

// State is the lifecycle of a Syncer.
type State int

const (
	NotStarted State = iota
	InFlight
	Done
)

// String returns the lower-case name used in logs and JSON.
func (s State) String() string {
	switch s {
	case InFlight:
		return "in_flight"
	case Done:
		return "done"
	default:
		return "not_started"
	}
}

// MarshalText lets State encode as its name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Store is the subset of service.Store the syncer writes through.
type Store interface {
	GetDestination(ctx context.Context, id int64) (domain.Destination, error)
	AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)
	UpdateDestination(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error)
	GetTrip(ctx context.Context, id int64) (domain.Trip, error)
	AddTrip(ctx context.Context, t domain.Trip) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id int64, p domain.TripPatch) (domain.Trip, error)
}

// Counts tallies one entity kind in a sync run.
type Counts struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Result summarises a finished run.
type Result struct {
	RunID        string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Destinations Counts    `json:"destinations"`
	Trips        Counts    `json:"trips"`
}

// Status is a point-in-time view of the syncer.
type Status struct {
	State     State   `json:"state"`
	LastRun   *Result `json:"last_run,omitempty"`
	LastError string  `json:"last_error,omitempty"`
}

// Syncer upserts remote records into a Store. At most one run is active at
// a time.
type Syncer struct {
	source Source
	store  Store
	log    *slog.Logger

	mu      sync.Mutex
	state   State
	last    *Result
	lastErr error
}

// NewSyncer returns a syncer in the NotStarted state.
func NewSyncer(source Source, store Store, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{source: source, store: store, log: log}
}

// Status returns the current state, the last result and the last error.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, LastRun: s.last}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// Run fetches destinations then trips and upserts each record. A record
// that the store rejects is skipped and counted; only a source failure or
// an unexpected store error aborts the run.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.state == InFlight {
		s.mu.Unlock()
		return Result{}, ErrSyncInFlight
	}
	s.state = InFlight
	s.mu.Unlock()

	res := Result{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
	log := s.log.With("run_id", res.RunID)
	log.InfoContext(ctx, "sync started")

	err := s.run(ctx, log, &res)
	res.FinishedAt = time.Now().UTC()

	s.mu.Lock()
	s.state = Done
	s.last = &res
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		log.ErrorContext(ctx, "sync failed", "error", err)
		return res, fmt.Errorf("remote.Syncer.Run: %w", err)
	}
	log.InfoContext(ctx, "sync finished",
		"destinations_added", res.Destinations.Added,
		"destinations_updated", res.Destinations.Updated,
		"destinations_skipped", res.Destinations.Skipped,
		"trips_added", res.Trips.Added,
		"trips_updated", res.Trips.Updated,
		"trips_skipped", res.Trips.Skipped,
	)
	return res, nil
}

func (s *Syncer) run(ctx context.Context, log *slog.Logger, res *Result) error {
	dests, err := s.source.Destinations(ctx)
	if err != nil {
		return err
	}
	for _, rec := range dests {
		if err := s.upsertDestination(ctx, rec, &res.Destinations); err != nil {
			if !skippable(err) {
				return err
			}
			res.Destinations.Skipped++
			log.WarnContext(ctx, "destination skipped", "destination_id", int64(rec.ID), "error", err)
		}
	}

	trips, err := s.source.Trips(ctx)
	if err != nil {
		return err
	}
	for _, rec := range trips {
		if err := s.upsertTrip(ctx, rec, &res.Trips); err != nil {
			if !skippable(err) {
				return err
			}
			res.Trips.Skipped++
			log.WarnContext(ctx, "trip skipped", "trip_id", int64(rec.ID), "error", err)
		}
	}
	return nil
}

func (s *Syncer) upsertDestination(ctx context.Context, rec DestinationRecord, c *Counts) error {
	id := int64(rec.ID)
	_, err := s.store.GetDestination(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		d := domain.Destination{ID: id, City: rec.City, Country: rec.Country}
		if rec.PictureURL != "" {
			d.ImageRef = &rec.PictureURL
		}
		if _, err := s.store.AddDestination(ctx, d); err != nil {
			return err
		}
		c.Added++
	case err != nil:
		return err
	default:
		p := domain.DestinationPatch{City: &rec.City, Country: &rec.Country, ImageRef: &rec.PictureURL}
		if _, err := s.store.UpdateDestination(ctx, id, p); err != nil {
			return err
		}
		c.Updated++
	}
	return nil
}

func (s *Syncer) upsertTrip(ctx context.Context, rec TripRecord, c *Counts) error {
	start, end, err := rec.Dates()
	if err != nil {
		return err
	}

	id := int64(rec.ID)
	dest := int64(rec.DestinationID)
	_, err = s.store.GetTrip(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		t := domain.Trip{ID: id, DestinationID: dest, Title: rec.Title, StartDate: start, EndDate: end}
		if _, err := s.store.AddTrip(ctx, t); err != nil {
			return err
		}
		c.Added++
	case err != nil:
		return err
	default:
		p := domain.TripPatch{DestinationID: &dest, Title: &rec.Title, StartDate: &start, EndDate: &end}
		if _, err := s.store.UpdateTrip(ctx, id, p); err != nil {
			return err
		}
		c.Updated++
	}
	return nil
}

// skippable reports whether err is a per-record rejection rather than a
// failure of the store itself.
func skippable(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidReference) ||
		errors.Is(err, domain.ErrDuplicateID)
}
