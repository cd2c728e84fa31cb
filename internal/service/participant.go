package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// Notifier delivers a confirmation notification for a trip to one participant.
// Implementations live in the notify package.
type Notifier interface {
	SendConfirmation(ctx context.Context, trip domain.Trip, p domain.Participant) error
}

// BatchNotifier is implemented by notifiers that can deliver the confirmations
// of every participant of a trip in one round trip.
type BatchNotifier interface {
	SendConfirmations(ctx context.Context, trip domain.Trip, participants []domain.Participant) error
}

// ParticipantService creates participant records and triggers their
// confirmation notifications.
type ParticipantService struct {
	participants repo.ParticipantRepo
	notifier     Notifier
}

// NewParticipantService constructs a ParticipantService backed by the provided repo and notifier.
func NewParticipantService(participants repo.ParticipantRepo, notifier Notifier) *ParticipantService {
	return &ParticipantService{participants: participants, notifier: notifier}
}

// RegisterParticipantsToTrip registers every email against trip.
// All emails are validated before the first insert; duplicates (case-insensitive)
// are registered once. Callers wanting all-or-nothing semantics run this
// inside repo.TxManager.RunInTx.
func (s *ParticipantService) RegisterParticipantsToTrip(ctx context.Context, trip domain.Trip, emails []string) ([]domain.Participant, error) {
	normalized, err := NormalizeEmails(emails)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Participant, 0, len(normalized))
	for _, email := range normalized {
		p, err := s.participants.Create(ctx, domain.Participant{TripID: trip.ID, Email: email})
		if err != nil {
			return nil, fmt.Errorf("service.ParticipantService.RegisterParticipantsToTrip: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// RegisterParticipantToTrip registers a single email against trip.
// Re-inviting an email already on the trip returns the existing participant.
func (s *ParticipantService) RegisterParticipantToTrip(ctx context.Context, trip domain.Trip, email string) (domain.Participant, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return domain.Participant{}, err
	}
	p, err := s.participants.Create(ctx, domain.Participant{TripID: trip.ID, Email: normalized})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.RegisterParticipantToTrip: %w", err)
	}
	return p, nil
}

// ListByTripID returns all participants of a trip.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ParticipantService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}

// TriggerConfirmationToParticipants notifies every participant of trip.
// A BatchNotifier receives the whole list at once. Otherwise a failed delivery
// does not stop the others and all failures are returned joined.
func (s *ParticipantService) TriggerConfirmationToParticipants(ctx context.Context, trip domain.Trip) error {
	participants, err := s.participants.ListByTripID(ctx, trip.ID)
	if err != nil {
		return fmt.Errorf("service.ParticipantService.TriggerConfirmationToParticipants: %w", err)
	}
	if len(participants) == 0 {
		return nil
	}

	if batch, ok := s.notifier.(BatchNotifier); ok {
		if err := batch.SendConfirmations(ctx, trip, participants); err != nil {
			return fmt.Errorf("service.ParticipantService.TriggerConfirmationToParticipants: %w", err)
		}
		return nil
	}

	var errs []error
	for _, p := range participants {
		if err := s.notifier.SendConfirmation(ctx, trip, p); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", p.Email, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("service.ParticipantService.TriggerConfirmationToParticipants: %w", err)
	}
	return nil
}

// TriggerConfirmationToParticipant notifies a single participant of trip.
func (s *ParticipantService) TriggerConfirmationToParticipant(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	if err := s.notifier.SendConfirmation(ctx, trip, p); err != nil {
		return fmt.Errorf("service.ParticipantService.TriggerConfirmationToParticipant: %w", err)
	}
	return nil
}

// NormalizeEmails trims, lower-cases and de-duplicates emails, keeping the
// first occurrence order. The first invalid address fails the whole list.
func NormalizeEmails(emails []string) ([]string, error) {
	normalized := make([]string, 0, len(emails))
	seen := make(map[string]bool, len(emails))
	for _, raw := range emails {
		email, err := normalizeEmail(raw)
		if err != nil {
			return nil, err
		}
		if seen[email] {
			continue
		}
		seen[email] = true
		normalized = append(normalized, email)
	}
	return normalized, nil
}

// normalizeEmail trims and lower-cases an address and rejects anything that is
// not a bare addr-spec (display names and angle brackets are refused).
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q is not a valid email address", domain.ErrValidation, raw)
	}
	return email, nil
}
