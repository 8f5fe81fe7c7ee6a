package model

import (
	"time"
)

const (
	ServiceWalk      = "walk"
	ServiceDropIn    = "drop-in"
	ServiceOvernight = "overnight"
)

// Booking is an immutable record of a requested service occurrence. There is
// no update or delete flow anywhere in the system: once stored, a booking only
// ever surfaces through owner-scoped listing.
type Booking struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"user_id" validate:"required"`
	Service      string    `json:"service" db:"service" validate:"required,oneof=walk drop-in overnight"`
	Date         string    `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	Time         string    `json:"time" db:"time" validate:"required,datetime=15:04"`
	DurationMins int       `json:"duration_mins" db:"duration_mins" validate:"required,min=20,max=240"`
	Pets         int       `json:"pets" db:"pets" validate:"required,min=1,max=6"`
	Notes        string    `json:"notes,omitempty" db:"notes" validate:"omitempty,max=500"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" validate:"omitempty"`
}

// BookingRequest is the client-submitted shape. The owner is never taken from
// the request body; it comes from the verified session identity.
type BookingRequest struct {
	Service      string `json:"service"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	DurationMins int    `json:"duration_mins"`
	Pets         int    `json:"pets"`
	Notes        string `json:"notes,omitempty"`
}
