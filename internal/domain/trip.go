// Package domain contains the core data types for the Travel Planner backend.
// This package is imported by every other internal package (repo, service,
// handler, remote) and holds no storage or transport logic.
package domain

import "time"

// Trip is a dated visit to one Destination.
// StartDate and EndDate are calendar dates stored as UTC midnight.
type Trip struct {
	ID            int64     `json:"id"`
	DestinationID int64     `json:"destination_id"`
	Title         string    `json:"title"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Description   *string   `json:"description,omitempty"` // nil when not provided
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Covers reports whether the calendar date d falls within the trip's
// inclusive [StartDate, EndDate] range.
func (t Trip) Covers(d time.Time) bool {
	day := TruncateDate(d)
	return !day.Before(TruncateDate(t.StartDate)) && !day.After(TruncateDate(t.EndDate))
}

// TripPatch carries a partial update for a Trip. Nil fields are left untouched.
// A non-nil Description pointing at "" clears the description.
type TripPatch struct {
	DestinationID *int64
	Title         *string
	StartDate     *time.Time
	EndDate       *time.Time
	Description   *string
}

// Apply returns a copy of t with the non-nil patch fields applied.
func (p TripPatch) Apply(t Trip) Trip {
	if p.DestinationID != nil {
		t.DestinationID = *p.DestinationID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.StartDate != nil {
		t.StartDate = TruncateDate(*p.StartDate)
	}
	if p.EndDate != nil {
		t.EndDate = TruncateDate(*p.EndDate)
	}
	if p.Description != nil {
		t.Description = optional(*p.Description)
	}
	return t
}
