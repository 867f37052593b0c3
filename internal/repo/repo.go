// Package repo contains the storage backends for the Travel Planner store.
// Each entity has its own file with an interface and a Postgres
// implementation; memory.go holds the in-memory implementations of the same
// interfaces. No business rules live here, only storage and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repos bundles one repository per collection.
// The service layer receives a Repos and never knows which backend it got.
type Repos struct {
	Destinations DestinationRepo
	Trips        TripRepo
	Activities   ActivityRepo
	Expenses     ExpenseRepo
}

// NewPgRepos builds Postgres-backed repositories sharing one connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPgRepos(db db) Repos {
	return Repos{
		Destinations: NewDestinationRepo(db),
		Trips:        NewTripRepo(db),
		Activities:   NewActivityRepo(db),
		Expenses:     NewExpenseRepo(db),
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres SQLSTATE codes the repos translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps constraint violations onto domain errors. onForeignKey is
// what a foreign key violation means for the calling statement: a missing
// parent on insert/update, remaining dependents on delete.
func translate(err error, onForeignKey error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w (%s)", domain.ErrDuplicateID, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s)", onForeignKey, pgErr.ConstraintName)
	}
	return err
}

// countRows runs a single-value COUNT query.
func countRows(ctx context.Context, db db, q string, args pgx.NamedArgs) (int, error) {
	var n int
	if err := db.QueryRow(ctx, q, args).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
