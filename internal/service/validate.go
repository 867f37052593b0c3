package service

import (
	"fmt"
	"strings"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Validation enforces the field rules shared by add and update. Each function
// returns a domain.ErrValidation-wrapped error naming the first failing field.

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return nil
}

func validateDestination(d domain.Destination) error {
	if err := validateID(d.ID); err != nil {
		return err
	}
	if err := required("city", d.City); err != nil {
		return err
	}
	return required("country", d.Country)
}

// validateTrip enforces:
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Both dates are required; EndDate must not be before StartDate.
//     A one-day trip (EndDate == StartDate) is valid.
func validateTrip(t domain.Trip) error {
	if err := validateID(t.ID); err != nil {
		return err
	}
	if err := required("title", t.Title); err != nil {
		return err
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// normalizeActivity validates a and returns it with Time in "15:04" form and
// Date truncated to a calendar day.
func normalizeActivity(a domain.Activity) (domain.Activity, error) {
	if err := validateID(a.ID); err != nil {
		return a, err
	}
	if err := required("name", a.Name); err != nil {
		return a, err
	}
	if err := required("location", a.Location); err != nil {
		return a, err
	}
	if a.Date.IsZero() {
		return a, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	clock, err := domain.ParseClock(a.Time)
	if err != nil {
		return a, err
	}
	a.Time = clock
	a.Date = domain.TruncateDate(a.Date)
	return a, nil
}

func validateExpense(e domain.Expense) error {
	if err := validateID(e.ID); err != nil {
		return err
	}
	if err := required("title", e.Title); err != nil {
		return err
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
