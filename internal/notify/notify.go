// Package notify delivers trip confirmation notifications to participants.
// Every transport implements service.Notifier; Multi fans a single
// confirmation out to all configured transports.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Confirmation is the payload published for one participant of a confirmed trip.
// It is JSON-encoded for the RabbitMQ and Kafka transports.
type Confirmation struct {
	TripID        uuid.UUID `json:"trip_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Destination   string    `json:"destination"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
}

// NewConfirmation builds the payload sent to p about trip.
func NewConfirmation(trip domain.Trip, p domain.Participant) Confirmation {
	return Confirmation{
		TripID:        trip.ID,
		ParticipantID: p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Destination:   trip.Destination,
		StartsAt:      trip.StartsAt.UTC(),
		EndsAt:        trip.EndsAt.UTC(),
	}
}

// Sender is the contract shared by every transport in this package.
// It matches service.Notifier.
type Sender interface {
	SendConfirmation(ctx context.Context, trip domain.Trip, p domain.Participant) error
}

// BatchSender is implemented by transports that publish the confirmations of
// a whole trip in one round trip. It matches service.BatchNotifier.
type BatchSender interface {
	SendConfirmations(ctx context.Context, trip domain.Trip, participants []domain.Participant) error
}

// Multi sends each confirmation through every wrapped Sender.
// A failing transport does not prevent delivery through the others.
type Multi struct {
	senders []Sender
}

// NewMulti returns a Multi over senders, in order.
func NewMulti(senders ...Sender) *Multi {
	return &Multi{senders: senders}
}

// SendConfirmation implements service.Notifier.
func (m *Multi) SendConfirmation(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	var errs []error
	for _, s := range m.senders {
		if err := s.SendConfirmation(ctx, trip, p); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("notify.Multi.SendConfirmation: %w", err)
	}
	return nil
}

// SendConfirmations implements service.BatchNotifier. Transports that support
// batching get the whole list; the others are called once per participant.
func (m *Multi) SendConfirmations(ctx context.Context, trip domain.Trip, participants []domain.Participant) error {
	var errs []error
	for _, s := range m.senders {
		if b, ok := s.(BatchSender); ok {
			if err := b.SendConfirmations(ctx, trip, participants); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		for _, p := range participants {
			if err := s.SendConfirmation(ctx, trip, p); err != nil {
				errs = append(errs, fmt.Errorf("notify %s: %w", p.Email, err))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("notify.Multi.SendConfirmations: %w", err)
	}
	return nil
}

// Close releases every sender that holds a connection.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.senders {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
