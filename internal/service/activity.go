package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ActivityService implements persistence-facing rules for activities.
// The trip-window check belongs to TripService, which owns the trip.
type ActivityService struct {
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repo.
func NewActivityService(activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{activities: activities}
}

// Register validates and persists an activity for trip.
// Returns domain.ErrValidation if the title is blank.
func (s *ActivityService) Register(ctx context.Context, trip domain.Trip, a domain.Activity) (domain.Activity, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return domain.Activity{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	created, err := s.activities.Create(ctx, domain.Activity{
		TripID:   trip.ID,
		Title:    title,
		OccursAt: a.OccursAt.UTC(),
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Register: %w", err)
	}
	return created, nil
}

// ListByTripID returns all activities for a trip ordered by occurs_at ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTripID: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}
