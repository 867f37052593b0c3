package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/policy"
)

// AddExpense validates an expense, verifies its trip exists, then stores it.
func (s *Store) AddExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	e.Date = domain.TruncateDate(e.Date)
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.parentTrip(ctx, e.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.Store.AddExpense: %w", err)
	}

	created, err := s.expenses.Create(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.Store.AddExpense: %w", err)
	}
	s.log.InfoContext(ctx, "expense added", "expense_id", created.ID, "trip_id", created.TripID, "amount", created.Amount.String())
	return created, nil
}

// GetExpense returns a single expense.
func (s *Store) GetExpense(ctx context.Context, id int64) (domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.Store.GetExpense: %w", err)
	}
	return e, nil
}

// ListExpenses returns every expense in insertion order.
func (s *Store) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out, err := s.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Store.ListExpenses: %w", err)
	}
	return nonNil(out), nil
}

// ListExpensesByTrip returns the expenses of one trip in insertion order.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *Store) ListExpensesByTrip(ctx context.Context, tripID int64) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.Store.ListExpensesByTrip: %w", err)
	}
	out, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.Store.ListExpensesByTrip: %w", err)
	}
	return nonNil(out), nil
}

// ExpenseTotal sums the expenses of one trip.
func (s *Store) ExpenseTotal(ctx context.Context, tripID int64) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return decimal.Zero, fmt.Errorf("service.Store.ExpenseTotal: %w", err)
	}
	list, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service.Store.ExpenseTotal: %w", err)
	}
	return sumAmounts(list), nil
}

// UpdateExpense applies the non-nil fields of p to expense id.
func (s *Store) UpdateExpense(ctx context.Context, id int64, p domain.ExpensePatch) (domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.Store.UpdateExpense: %w", err)
	}

	merged := p.Apply(current)
	if err := validateExpense(merged); err != nil {
		return domain.Expense{}, err
	}

	updated, err := s.expenses.Update(ctx, merged)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.Store.UpdateExpense: %w", err)
	}
	s.log.InfoContext(ctx, "expense updated", "expense_id", id)
	return updated, nil
}

// CanDeleteExpense reports whether at most 30 whole days have passed since
// the expense date as of now.
func (s *Store) CanDeleteExpense(ctx context.Context, id int64, now time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("service.Store.CanDeleteExpense: %w", err)
	}
	return policy.ExpenseDeletable(e, now, s.loc), nil
}

// DeleteExpense removes expense id unless it is more than 30 days old
// according to the store's clock, in which case domain.ErrTooOld is returned.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.Store.DeleteExpense: %w", err)
	}
	if err := policy.ExpenseCheck(e, s.now(), s.loc); err != nil {
		s.logBlocked(ctx, "expense", id, err)
		return fmt.Errorf("service.Store.DeleteExpense: %w", err)
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.Store.DeleteExpense: %w", err)
	}
	s.log.InfoContext(ctx, "expense deleted", "expense_id", id)
	return nil
}

func sumAmounts(list []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range list {
		total = total.Add(e.Amount)
	}
	return total
}
