package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	// Create inserts a new expense with its caller-supplied id.
	// Returns domain.ErrDuplicateID if the id is taken.
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense.
	// Returns domain.ErrNotFound if no expense with that id exists.
	GetByID(ctx context.Context, id int64) (domain.Expense, error)

	// List returns all expenses in insertion order.
	List(ctx context.Context) ([]domain.Expense, error)

	// ListByTripID returns the expenses of a trip, in insertion order.
	ListByTripID(ctx context.Context, tripID int64) ([]domain.Expense, error)

	// CountByTripID returns how many expenses reference a trip.
	CountByTripID(ctx context.Context, tripID int64) (int, error)

	// Update overwrites the mutable fields of an expense.
	// Returns domain.ErrNotFound if no expense with that id exists.
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// Delete removes an expense unconditionally.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

// amount is NUMERIC; it travels as text in both directions so no precision
// is lost to float conversion.
const expenseColumns = `id, trip_id, title, amount::text, expense_date, created_at, updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (id, trip_id, title, amount, expense_date)
		VALUES (@id, @trip_id, @title, @amount::numeric, @expense_date)
		RETURNING ` + expenseColumns

	result, err := scanExpense(r.db.QueryRow(ctx, q, expenseArgs(e)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", translate(err, domain.ErrInvalidReference))
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, id int64) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) List(ctx context.Context) ([]domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses ORDER BY seq`

	out, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.List: %w", err)
	}
	return out, nil
}

func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE trip_id = @trip_id ORDER BY seq`

	out, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgExpenseRepo) CountByTripID(ctx context.Context, tripID int64) (int, error) {
	const q = `SELECT count(*) FROM expenses WHERE trip_id = @trip_id`

	n, err := countRows(ctx, r.db, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.CountByTripID: %w", err)
	}
	return n, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET title        = @title,
		    amount       = @amount::numeric,
		    expense_date = @expense_date,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + expenseColumns

	result, err := scanExpense(r.db.QueryRow(ctx, q, expenseArgs(e)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM expenses WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgExpenseRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Expense, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func expenseArgs(e domain.Expense) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":           e.ID,
		"trip_id":      e.TripID,
		"title":        e.Title,
		"amount":       e.Amount.String(),
		"expense_date": e.Date,
	}
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e      domain.Expense
		amount string
		date   pgtype.Date
	)

	err := s.Scan(&e.ID, &e.TripID, &e.Title, &amount, &date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.Date = date.Time
	return e, nil
}
