package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// ListActivities handles GET /trips/{id}/activities.
// An unknown trip yields an empty list, not 404.
func (s *Server) ListActivities(ctx context.Context, req gen.ListActivitiesRequestObject) (gen.ListActivitiesResponseObject, error) {
	activities, err := s.trips.ListActivities(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	out := make([]gen.Activity, len(activities))
	for i, a := range activities {
		out[i] = activityToResponse(a)
	}
	return gen.ListActivities200JSONResponse{Activities: out}, nil
}

// RegisterActivity handles POST /trips/{id}/activities.
func (s *Server) RegisterActivity(ctx context.Context, req gen.RegisterActivityRequestObject) (gen.RegisterActivityResponseObject, error) {
	if req.Body == nil {
		return gen.RegisterActivity400JSONResponse(requestBody("request body is required")), nil
	}
	if req.Body.OccursAt.IsZero() {
		return gen.RegisterActivity400JSONResponse(requestBody("occurs_at is required")), nil
	}

	created, err := s.trips.RegisterActivity(ctx, req.Id, domain.Activity{
		Title:    req.Body.Title,
		OccursAt: req.Body.OccursAt.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.RegisterActivity404JSONResponse(notFoundBody("trip not found")), nil
		case errors.Is(err, domain.ErrValidation):
			return gen.RegisterActivity400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.RegisterActivity200JSONResponse{ActivityId: created.ID}, nil
}
