package handler

import (
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// requestToTrip converts a decoded TripRequest to its domain form.
// Absent timestamps decode to the zero time and are reported here; range and
// past-date rules belong to the service.
func requestToTrip(body *gen.TripRequest) (domain.TripRequest, error) {
	if body == nil {
		return domain.TripRequest{}, errors.New("request body is required")
	}
	if body.StartsAt.IsZero() {
		return domain.TripRequest{}, errors.New("starts_at is required")
	}
	if body.EndsAt.IsZero() {
		return domain.TripRequest{}, errors.New("ends_at is required")
	}
	req := domain.TripRequest{
		Destination: body.Destination,
		StartsAt:    body.StartsAt.Time,
		EndsAt:      body.EndsAt.Time,
	}
	if body.EmailsToInvite != nil {
		req.EmailsToInvite = *body.EmailsToInvite
	}
	return req, nil
}

func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt,
		EndsAt:      t.EndsAt,
		IsConfirmed: t.IsConfirmed,
	}
}

func activityToResponse(a domain.Activity) gen.Activity {
	return gen.Activity{Id: a.ID, Title: a.Title, OccursAt: a.OccursAt}
}

// participantToResponse leaves name null until the participant sets one.
func participantToResponse(p domain.Participant) gen.Participant {
	out := gen.Participant{Id: p.ID, Email: p.Email, IsConfirmed: p.IsConfirmed}
	if p.Name != "" {
		name := p.Name
		out.Name = &name
	}
	return out
}

func linkToResponse(l domain.Link) gen.Link {
	return gen.Link{Id: l.ID, Title: l.Title, Url: l.URL}
}
