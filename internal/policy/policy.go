// Package policy holds the deletion rules for the travel hierarchy.
// Every function here is pure: callers pass the current dependent counts or
// the record together with a reference "now", so the rules can be tested
// without a store or a real clock.
package policy

import (
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ExpenseRetentionDays is how many whole days after its date an expense may
// still be deleted.
const ExpenseRetentionDays = 30

// DestinationDeletable reports whether a destination with tripRefs
// referencing trips may be removed.
func DestinationDeletable(tripRefs int) bool {
	return tripRefs == 0
}

// TripDeletable reports whether a trip may be removed given how many
// activities and expenses still reference it.
func TripDeletable(activityRefs, expenseRefs int) bool {
	return activityRefs == 0 && expenseRefs == 0
}

// ActivityDeletable reports whether the activity is still in the future:
// its scheduled instant must be strictly after now. An activity scheduled
// exactly at now counts as past. An activity whose time cannot be parsed is
// never deletable.
func ActivityDeletable(a domain.Activity, now time.Time, loc *time.Location) bool {
	at, err := a.ScheduledAt(loc)
	if err != nil {
		return false
	}
	return at.After(now)
}

// ExpenseAgeDays returns the number of calendar days between the expense's
// date and now's date in loc. Days are counted on civil dates, so a DST
// transition never shortens or lengthens the count. Future-dated expenses
// yield a negative age.
func ExpenseAgeDays(e domain.Expense, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := e.Date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = now.In(loc).Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}

// ExpenseDeletable reports whether the expense is young enough to delete.
// Exactly ExpenseRetentionDays elapsed is still deletable; one more is not.
func ExpenseDeletable(e domain.Expense, now time.Time, loc *time.Location) bool {
	return ExpenseAgeDays(e, now, loc) <= ExpenseRetentionDays
}

// DestinationCheck returns nil when the destination may be deleted, or a
// blocked-deletion error naming the reason.
func DestinationCheck(tripRefs int) error {
	if !DestinationDeletable(tripRefs) {
		return domain.Blocked(domain.ErrHasDependents)
	}
	return nil
}

// TripCheck is the error-returning form of TripDeletable.
func TripCheck(activityRefs, expenseRefs int) error {
	if !TripDeletable(activityRefs, expenseRefs) {
		return domain.Blocked(domain.ErrHasDependents)
	}
	return nil
}

// ActivityCheck is the error-returning form of ActivityDeletable.
func ActivityCheck(a domain.Activity, now time.Time, loc *time.Location) error {
	if !ActivityDeletable(a, now, loc) {
		return domain.Blocked(domain.ErrPastSchedule)
	}
	return nil
}

// ExpenseCheck is the error-returning form of ExpenseDeletable.
func ExpenseCheck(e domain.Expense, now time.Time, loc *time.Location) error {
	if !ExpenseDeletable(e, now, loc) {
		return domain.Blocked(domain.ErrTooOld)
	}
	return nil
}
