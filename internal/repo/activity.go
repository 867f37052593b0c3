package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
type ActivityRepo interface {
	// Create inserts a new activity with its caller-supplied id.
	// Returns domain.ErrDuplicateID if the id is taken.
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity.
	// Returns domain.ErrNotFound if no activity with that id exists.
	GetByID(ctx context.Context, id int64) (domain.Activity, error)

	// List returns all activities in insertion order.
	List(ctx context.Context) ([]domain.Activity, error)

	// ListByTripID returns the activities of a trip, in insertion order.
	ListByTripID(ctx context.Context, tripID int64) ([]domain.Activity, error)

	// CountByTripID returns how many activities reference a trip.
	CountByTripID(ctx context.Context, tripID int64) (int, error)

	// Update overwrites the mutable fields of an activity.
	// Returns domain.ErrNotFound if no activity with that id exists.
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// Delete removes an activity unconditionally.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

// activity_time is a TIME column; it is always read back as "HH24:MI".
const activityColumns = `id, trip_id, name, activity_date, to_char(activity_time, 'HH24:MI'), location, created_at, updated_at`

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (id, trip_id, name, activity_date, activity_time, location)
		VALUES (@id, @trip_id, @name, @activity_date, @activity_time::time, @location)
		RETURNING ` + activityColumns

	result, err := scanActivity(r.db.QueryRow(ctx, q, activityArgs(a)))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", translate(err, domain.ErrInvalidReference))
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id int64) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = @id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities ORDER BY seq`

	out, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.List: %w", err)
	}
	return out, nil
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE trip_id = @trip_id ORDER BY seq`

	out, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgActivityRepo) CountByTripID(ctx context.Context, tripID int64) (int, error) {
	const q = `SELECT count(*) FROM activities WHERE trip_id = @trip_id`

	n, err := countRows(ctx, r.db, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.CountByTripID: %w", err)
	}
	return n, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET name          = @name,
		    activity_date = @activity_date,
		    activity_time = @activity_time::time,
		    location      = @location,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	result, err := scanActivity(r.db.QueryRow(ctx, q, activityArgs(a)))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgActivityRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func activityArgs(a domain.Activity) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":            a.ID,
		"trip_id":       a.TripID,
		"name":          a.Name,
		"activity_date": a.Date,
		"activity_time": a.Time,
		"location":      a.Location,
	}
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a    domain.Activity
		date pgtype.Date
	)

	err := s.Scan(&a.ID, &a.TripID, &a.Name, &date, &a.Time, &a.Location, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.Date = date.Time
	return a, nil
}
