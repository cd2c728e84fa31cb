package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ExportService assembles the read-only itinerary view of a trip.
type ExportService struct {
	trips        repo.TripRepo
	activities   repo.ActivityRepo
	participants repo.ParticipantRepo
	links        repo.LinkRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, activities repo.ActivityRepo, participants repo.ParticipantRepo, links repo.LinkRepo) *ExportService {
	return &ExportService{trips: trips, activities: activities, participants: participants, links: links}
}

// Itinerary returns the trip together with its activities, participants and links.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *ExportService) Itinerary(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrTripNotFound
		}
		return domain.Itinerary{}, fmt.Errorf("service.ExportService.Itinerary: %w", err)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ExportService.Itinerary: activities: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ExportService.Itinerary: participants: %w", err)
	}
	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ExportService.Itinerary: links: %w", err)
	}

	return domain.Itinerary{
		Trip:         trip,
		Activities:   activities,
		Participants: participants,
		Links:        links,
	}, nil
}
