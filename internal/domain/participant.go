package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person invited to a trip.
// Name is empty until the participant fills it in; Email is stored lower-cased.
type Participant struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        string
	Email       string
	IsConfirmed bool
	CreatedAt   time.Time
}
