package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new trip with its caller-supplied id.
	// Returns domain.ErrDuplicateID if the id is taken. The Postgres backend
	// also returns domain.ErrInvalidReference when the destination is missing.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip.
	// Returns domain.ErrNotFound if no trip with that id exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// List returns all trips in insertion order.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListByDestinationID returns the trips referencing a destination, in insertion order.
	ListByDestinationID(ctx context.Context, destinationID int64) ([]domain.Trip, error)

	// CountByDestinationID returns how many trips reference a destination.
	CountByDestinationID(ctx context.Context, destinationID int64) (int, error)

	// Update overwrites the mutable fields of a trip and returns the stored record.
	// Returns domain.ErrNotFound if no trip with that id exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip unconditionally.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, destination_id, title, start_date, end_date, description, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (id, destination_id, title, start_date, end_date, description)
		VALUES (@id, @destination_id, @title, @start_date, @end_date, @description)
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", translate(err, domain.ErrInvalidReference))
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY seq`

	trips, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) ListByDestinationID(ctx context.Context, destinationID int64) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE destination_id = @destination_id ORDER BY seq`

	trips, err := r.query(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByDestinationID: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) CountByDestinationID(ctx context.Context, destinationID int64) (int, error) {
	const q = `SELECT count(*) FROM trips WHERE destination_id = @destination_id`

	n, err := countRows(ctx, r.db, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CountByDestinationID: %w", err)
	}
	return n, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination_id = @destination_id,
		    title          = @title,
		    start_date     = @start_date,
		    end_date       = @end_date,
		    description    = @description,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", translate(err, domain.ErrInvalidReference))
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", translate(err, domain.Blocked(domain.ErrHasDependents)))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":             trip.ID,
		"destination_id": trip.DestinationID,
		"title":          trip.Title,
		"start_date":     trip.StartDate,
		"end_date":       trip.EndDate,
		"description":    trip.Description, // nil becomes NULL
	}
}

// scanTrip maps a single database row into a domain.Trip.
// DATE columns are scanned through pgtype.Date and come back as UTC midnight.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		start, end pgtype.Date
	)

	err := s.Scan(&t.ID, &t.DestinationID, &t.Title, &start, &end, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.StartDate = start.Time
	t.EndDate = end.Time
	return t, nil
}
