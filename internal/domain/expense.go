package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a dated cost entry associated with a Trip.
// Amount is a positive currency value; Date is a calendar date (UTC midnight).
type Expense struct {
	ID        int64           `json:"id"`
	TripID    int64           `json:"trip_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ExpensePatch carries a partial update for an Expense. Nil fields are left untouched.
type ExpensePatch struct {
	Title  *string
	Amount *decimal.Decimal
	Date   *time.Time
}

// Apply returns a copy of e with the non-nil patch fields applied.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Date != nil {
		e.Date = TruncateDate(*p.Date)
	}
	return e
}
