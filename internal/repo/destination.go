package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// DestinationRepo defines the persistence operations for Destinations.
// The service layer depends on this interface, not on a concrete backend.
type DestinationRepo interface {
	// Create inserts a new destination with its caller-supplied id and returns
	// the stored record. Returns domain.ErrDuplicateID if the id is taken.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetByID retrieves a single destination.
	// Returns domain.ErrNotFound if no destination with that id exists.
	GetByID(ctx context.Context, id int64) (domain.Destination, error)

	// List returns all destinations in insertion order.
	List(ctx context.Context) ([]domain.Destination, error)

	// Update overwrites the mutable fields of an existing destination and
	// returns the stored record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// Delete removes a destination unconditionally.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, city, country, image_ref, created_at, updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (id, city, country, image_ref)
		VALUES (@id, @city, @country, @image_ref)
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":        d.ID,
		"city":      d.City,
		"country":   d.Country,
		"image_ref": d.ImageRef, // nil becomes NULL
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", translate(err, domain.ErrInvalidReference))
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id int64) (domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = @id`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations ORDER BY seq`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.List: scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET city       = @city,
		    country    = @country,
		    image_ref  = @image_ref,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":        d.ID,
		"city":      d.City,
		"country":   d.Country,
		"image_ref": d.ImageRef,
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", translate(err, domain.Blocked(domain.ErrHasDependents)))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var d domain.Destination
	err := s.Scan(&d.ID, &d.City, &d.Country, &d.ImageRef, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}
	return d, nil
}
