// Package service contains the business logic for the Trip Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ParticipantManager is the participant collaborator of TripService.
// *ParticipantService is the production implementation.
type ParticipantManager interface {
	RegisterParticipantsToTrip(ctx context.Context, trip domain.Trip, emails []string) ([]domain.Participant, error)
	RegisterParticipantToTrip(ctx context.Context, trip domain.Trip, email string) (domain.Participant, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	TriggerConfirmationToParticipants(ctx context.Context, trip domain.Trip) error
	TriggerConfirmationToParticipant(ctx context.Context, trip domain.Trip, p domain.Participant) error
}

// ActivityManager is the activity collaborator of TripService.
type ActivityManager interface {
	Register(ctx context.Context, trip domain.Trip, a domain.Activity) (domain.Activity, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

// LinkManager is the link collaborator of TripService.
type LinkManager interface {
	Register(ctx context.Context, trip domain.Trip, l domain.Link) (domain.Link, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// TripService is the single place that decides whether a trip operation is legal.
// It always re-reads the trip from the store before acting on it.
type TripService struct {
	trips        repo.TripRepo
	participants ParticipantManager
	activities   ActivityManager
	links        LinkManager
	tx           repo.TxManager
	now          func() time.Time
	log          *slog.Logger
}

// TripOption customises a TripService.
type TripOption func(*TripService)

// WithClock replaces time.Now as the source of "now" for the past-start rule.
func WithClock(now func() time.Time) TripOption {
	return func(s *TripService) { s.now = now }
}

// WithLogger sets the logger used for best-effort notification failures.
func WithLogger(l *slog.Logger) TripOption {
	return func(s *TripService) { s.log = l }
}

// NewTripService constructs a TripService from its collaborators.
func NewTripService(
	trips repo.TripRepo,
	participants ParticipantManager,
	activities ActivityManager,
	links LinkManager,
	tx repo.TxManager,
	opts ...TripOption,
) *TripService {
	s := &TripService{
		trips:        trips,
		participants: participants,
		activities:   activities,
		links:        links,
		tx:           tx,
		now:          time.Now,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the request and every invitee email, then persists the
// trip and registers the invitees in one transaction: either all of them are
// stored or none is.
// Returns domain.ErrInvalidDateRange or domain.ErrPastStartDate (both
// domain.ErrValidation) when the dates are unacceptable.
func (s *TripService) Create(ctx context.Context, req domain.TripRequest) (domain.Trip, error) {
	if err := validateTripRequest(req); err != nil {
		return domain.Trip{}, err
	}
	if req.StartsAt.Before(s.now()) {
		return domain.Trip{}, domain.ErrPastStartDate
	}
	invitees, err := NormalizeEmails(req.EmailsToInvite)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	var created domain.Trip
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.trips.Create(ctx, domain.Trip{
			Destination: strings.TrimSpace(req.Destination),
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
		})
		if err != nil {
			return err
		}
		_, err = s.participants.RegisterParticipantsToTrip(ctx, created, invitees)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetDetails looks a trip up by id. A missing trip is reported as found=false
// with a nil error; only infrastructure failures produce an error.
func (s *TripService) GetDetails(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, false, nil
		}
		return domain.Trip{}, false, fmt.Errorf("service.TripService.GetDetails: %w", err)
	}
	return trip, true, nil
}

// Update overwrites destination and dates of an existing trip.
// Date ordering is enforced as on creation; the past-start rule is not, since
// a trip that already began may still need its end date moved.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, req domain.TripRequest) (domain.Trip, error) {
	if err := validateTripRequest(req); err != nil {
		return domain.Trip{}, err
	}

	trip, err := s.loadTrip(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	trip.Destination = strings.TrimSpace(req.Destination)
	trip.StartsAt = req.StartsAt
	trip.EndsAt = req.EndsAt

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Confirm moves a trip to the confirmed state and notifies every participant.
// Confirming an already confirmed trip keeps it confirmed and notifies again.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.loadTrip(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	trip.IsConfirmed = true
	confirmed, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	// The state change is committed; a client hanging up must not cancel delivery.
	notifyCtx := context.WithoutCancel(ctx)
	if err := s.participants.TriggerConfirmationToParticipants(notifyCtx, confirmed); err != nil {
		s.log.WarnContext(ctx, "trip confirmation notification failed",
			"trip_id", confirmed.ID, "error", err)
	}
	return confirmed, nil
}

// ListActivities returns the activities of a trip. Unknown trips yield an empty slice.
func (s *TripService) ListActivities(ctx context.Context, id uuid.UUID) ([]domain.Activity, error) {
	activities, err := s.activities.ListByTripID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListActivities: %w", err)
	}
	return activities, nil
}

// RegisterActivity adds an activity to a trip. The activity must occur inside
// the trip window, bounds included; otherwise domain.ErrActivityOutOfRange.
func (s *TripService) RegisterActivity(ctx context.Context, id uuid.UUID, a domain.Activity) (domain.Activity, error) {
	trip, err := s.loadTrip(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.TripService.RegisterActivity: %w", err)
	}
	if !trip.Covers(a.OccursAt) {
		return domain.Activity{}, domain.ErrActivityOutOfRange
	}

	created, err := s.activities.Register(ctx, trip, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.TripService.RegisterActivity: %w", err)
	}
	return created, nil
}

// ListParticipants returns the participants of a trip. Unknown trips yield an empty slice.
func (s *TripService) ListParticipants(ctx context.Context, id uuid.UUID) ([]domain.Participant, error) {
	participants, err := s.participants.ListByTripID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	return participants, nil
}

// InviteParticipant registers one participant by email. When the trip is
// already confirmed the new participant is notified right away.
func (s *TripService) InviteParticipant(ctx context.Context, id uuid.UUID, email string) (domain.Participant, error) {
	trip, err := s.loadTrip(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.InviteParticipant: %w", err)
	}

	p, err := s.participants.RegisterParticipantToTrip(ctx, trip, email)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.InviteParticipant: %w", err)
	}

	if trip.IsConfirmed {
		if err := s.participants.TriggerConfirmationToParticipant(context.WithoutCancel(ctx), trip, p); err != nil {
			s.log.WarnContext(ctx, "participant confirmation notification failed",
				"trip_id", trip.ID, "participant_id", p.ID, "error", err)
		}
	}
	return p, nil
}

// ListLinks returns the links of a trip. Unknown trips yield an empty slice.
func (s *TripService) ListLinks(ctx context.Context, id uuid.UUID) ([]domain.Link, error) {
	links, err := s.links.ListByTripID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListLinks: %w", err)
	}
	return links, nil
}

// RegisterLink adds a link to an existing trip.
func (s *TripService) RegisterLink(ctx context.Context, id uuid.UUID, l domain.Link) (domain.Link, error) {
	trip, err := s.loadTrip(ctx, id)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.TripService.RegisterLink: %w", err)
	}

	created, err := s.links.Register(ctx, trip, l)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.TripService.RegisterLink: %w", err)
	}
	return created, nil
}

// loadTrip fetches a trip and turns a missing row into domain.ErrTripNotFound.
func (s *TripService) loadTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, domain.ErrTripNotFound
		}
		return domain.Trip{}, err
	}
	return trip, nil
}

// validateTripRequest enforces the rules common to Create and Update.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - StartsAt must be strictly before EndsAt.
func validateTripRequest(req domain.TripRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if !req.StartsAt.Before(req.EndsAt) {
		return domain.ErrInvalidDateRange
	}
	return nil
}
