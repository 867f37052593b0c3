package domain

import (
	"fmt"
	"strings"
	"time"
)

// Activity is a scheduled event within a Trip.
// Date is a calendar date (UTC midnight); Time is a 24-hour "15:04" clock
// value. Together they give the scheduled instant, see ScheduledAt.
type Activity struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"trip_id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduledAt combines Date and Time into a single instant in loc.
// Returns an error if Time is not a valid clock value.
func (a Activity) ScheduledAt(loc *time.Location) (time.Time, error) {
	hour, minute, err := clockParts(a.Time)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := a.Date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), nil
}

// ActivityPatch carries a partial update for an Activity. Nil fields are left untouched.
type ActivityPatch struct {
	Name     *string
	Date     *time.Time
	Time     *string
	Location *string
}

// Apply returns a copy of a with the non-nil patch fields applied.
func (p ActivityPatch) Apply(a Activity) Activity {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Date != nil {
		a.Date = TruncateDate(*p.Date)
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	return a
}

// clockLayouts are the accepted input forms for an activity time.
// The 12-hour form is what the mobile forms submit.
var clockLayouts = []string{"15:04", "03:04 PM", "3:04 PM", "03:04PM", "3:04PM"}

// ParseClock parses a clock value in either 24-hour ("18:30") or 12-hour
// ("06:30 PM") form and returns it normalised to "15:04".
func ParseClock(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("%w: time %q must be HH:MM or hh:mm AM/PM", ErrValidation, s)
}

func clockParts(s string) (int, int, error) {
	norm, err := ParseClock(s)
	if err != nil {
		return 0, 0, err
	}
	t, _ := time.Parse("15:04", norm)
	return t.Hour(), t.Minute(), nil
}
