package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

func TestStore_AddExpense_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Expense)
		want   error
	}{
		{"zero amount", func(e *domain.Expense) { e.Amount = decimal.Zero }, domain.ErrValidation},
		{"negative amount", func(e *domain.Expense) { e.Amount = decimal.NewFromInt(-5) }, domain.ErrValidation},
		{"blank title", func(e *domain.Expense) { e.Title = "" }, domain.ErrValidation},
		{"unknown trip", func(e *domain.Expense) { e.TripID = 77 }, domain.ErrInvalidReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			seed(t, s, false)

			e := dinner()
			tc.mutate(&e)
			_, err := s.AddExpense(context.Background(), e)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStore_ExpenseDeletion_Age(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		daysAgo int
		ok      bool
	}{
		{"today", 0, true},
		{"29 days", 29, true},
		{"30 days", 30, true},
		{"31 days", 31, false},
		{"45 days", 45, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			seed(t, s, false)

			e := dinner()
			e.Date = day(2025, 6, 15).AddDate(0, 0, -tc.daysAgo)
			_, err := s.AddExpense(ctx, e)
			require.NoError(t, err)

			ok, err := s.CanDeleteExpense(ctx, e.ID, now)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)

			err = s.DeleteExpense(ctx, e.ID)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrDeletionBlocked)
			assert.ErrorIs(t, err, domain.ErrTooOld)

			got, err := s.GetExpense(ctx, e.ID)
			require.NoError(t, err)
			assert.True(t, got.Amount.Equal(e.Amount))
		})
	}
}

func TestStore_UpdateExpense(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, true)

	neg := decimal.NewFromInt(-1)
	_, err := s.UpdateExpense(ctx, 1000, domain.ExpensePatch{Amount: &neg})
	require.ErrorIs(t, err, domain.ErrValidation)

	amt := decimal.RequireFromString("50.25")
	got, err := s.UpdateExpense(ctx, 1000, domain.ExpensePatch{Amount: &amt})
	require.NoError(t, err)
	assert.Equal(t, "50.25", got.Amount.StringFixed(2))
	assert.Equal(t, "Dinner", got.Title)
}

func TestStore_ExpenseTotal(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seed(t, s, true)

	taxi := dinner()
	taxi.ID, taxi.Title, taxi.Amount = 1001, "Taxi", decimal.RequireFromString("17.50")
	_, err := s.AddExpense(ctx, taxi)
	require.NoError(t, err)

	total, err := s.ExpenseTotal(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "60.00", total.StringFixed(2))

	_, err = s.ExpenseTotal(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
