package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// LinkService implements business logic for trip links.
type LinkService struct {
	links repo.LinkRepo
}

// NewLinkService constructs a LinkService backed by the provided repo.
func NewLinkService(links repo.LinkRepo) *LinkService {
	return &LinkService{links: links}
}

// Register validates and persists a link for trip.
//   - Title must be non-empty.
//   - URL must be an absolute http or https URL.
func (s *LinkService) Register(ctx context.Context, trip domain.Trip, l domain.Link) (domain.Link, error) {
	title := strings.TrimSpace(l.Title)
	if title == "" {
		return domain.Link{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	raw := strings.TrimSpace(l.URL)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Link{}, fmt.Errorf("%w: url must be an absolute http(s) URL", domain.ErrValidation)
	}

	created, err := s.links.Create(ctx, domain.Link{TripID: trip.ID, Title: title, URL: raw})
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Register: %w", err)
	}
	return created, nil
}

// ListByTripID returns all links for a trip.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LinkService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTripID: %w", err)
	}
	if links == nil {
		return []domain.Link{}, nil
	}
	return links, nil
}
