package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// ListParticipants handles GET /trips/{id}/participants.
// An unknown trip yields an empty list, not 404.
func (s *Server) ListParticipants(ctx context.Context, req gen.ListParticipantsRequestObject) (gen.ListParticipantsResponseObject, error) {
	participants, err := s.trips.ListParticipants(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	out := make([]gen.Participant, len(participants))
	for i, p := range participants {
		out[i] = participantToResponse(p)
	}
	return gen.ListParticipants200JSONResponse{Participants: out}, nil
}

// InviteParticipant handles POST /trips/{id}/invite.
// Malformed addresses never get here: openapi_types.Email rejects them while
// the body is decoded.
func (s *Server) InviteParticipant(ctx context.Context, req gen.InviteParticipantRequestObject) (gen.InviteParticipantResponseObject, error) {
	if req.Body == nil || req.Body.Email == "" {
		return gen.InviteParticipant400JSONResponse(requestBody("email is required")), nil
	}

	p, err := s.trips.InviteParticipant(ctx, req.Id, string(req.Body.Email))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.InviteParticipant404JSONResponse(notFoundBody("trip not found")), nil
		case errors.Is(err, domain.ErrValidation):
			return gen.InviteParticipant400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.InviteParticipant200JSONResponse{ParticipantId: p.ID}, nil
}
