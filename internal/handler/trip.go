package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	in, err := requestToTrip(req.Body)
	if err != nil {
		return gen.CreateTrip400JSONResponse(requestBody(err.Error())), nil
	}

	created, err := s.trips.Create(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateTrip400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateTrip200JSONResponse{TripId: created.ID}, nil
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, found, err := s.trips.GetDetails(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if !found {
		return gen.GetTrip404JSONResponse(notFoundBody("trip not found")), nil
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// UpdateTrip handles PUT /trips/{id}.
// Confirmation status is preserved; emails_to_invite is ignored.
func (s *Server) UpdateTrip(ctx context.Context, req gen.UpdateTripRequestObject) (gen.UpdateTripResponseObject, error) {
	in, err := requestToTrip(req.Body)
	if err != nil {
		return gen.UpdateTrip400JSONResponse(requestBody(err.Error())), nil
	}

	updated, err := s.trips.Update(ctx, req.Id, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.UpdateTrip404JSONResponse(notFoundBody("trip not found")), nil
		case errors.Is(err, domain.ErrValidation):
			return gen.UpdateTrip400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.UpdateTrip200JSONResponse(tripToResponse(updated)), nil
}

// ConfirmTrip handles GET /trips/{id}/confirm.
// Confirming an already confirmed trip succeeds without notifying again.
func (s *Server) ConfirmTrip(ctx context.Context, req gen.ConfirmTripRequestObject) (gen.ConfirmTripResponseObject, error) {
	confirmed, err := s.trips.Confirm(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ConfirmTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.ConfirmTrip200JSONResponse(tripToResponse(confirmed)), nil
}
