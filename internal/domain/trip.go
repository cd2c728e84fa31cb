// Package domain contains the core data types for the Trip Planner application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, notify, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned journey with a date window.
// A trip is the aggregate root; participants, activities and links belong to it.
// A trip starts as a draft and becomes confirmed exactly once.
type Trip struct {
	ID          uuid.UUID
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	IsConfirmed bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TripRequest carries the caller-supplied fields used to create or update a trip.
// EmailsToInvite is only read on creation.
type TripRequest struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	EmailsToInvite []string
}

// Covers reports whether t falls inside the trip window, bounds included.
func (t Trip) Covers(at time.Time) bool {
	return !at.Before(t.StartsAt) && !at.After(t.EndsAt)
}
