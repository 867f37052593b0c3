package domain

import "time"

// Destination is a city/country travel target. Trips refer to it by id;
// the destination itself holds no list of trips.
type Destination struct {
	ID        int64     `json:"id"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	ImageRef  *string   `json:"image_ref,omitempty"` // nil when no picture is attached
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DestinationPatch carries a partial update for a Destination.
// A non-nil ImageRef pointing at "" removes the picture reference.
type DestinationPatch struct {
	City     *string
	Country  *string
	ImageRef *string
}

// Apply returns a copy of d with the non-nil patch fields applied.
func (p DestinationPatch) Apply(d Destination) Destination {
	if p.City != nil {
		d.City = *p.City
	}
	if p.Country != nil {
		d.Country = *p.Country
	}
	if p.ImageRef != nil {
		d.ImageRef = optional(*p.ImageRef)
	}
	return d
}

// optional converts an empty string to nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
