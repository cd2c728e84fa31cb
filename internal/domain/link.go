package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link is a reference URL attached to a trip (bookings, maps, tickets).
type Link struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Title     string
	URL       string
	CreatedAt time.Time
}
