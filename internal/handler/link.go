package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// ListLinks handles GET /trips/{id}/links.
// An unknown trip yields an empty list, not 404.
func (s *Server) ListLinks(ctx context.Context, req gen.ListLinksRequestObject) (gen.ListLinksResponseObject, error) {
	links, err := s.trips.ListLinks(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	out := make([]gen.Link, len(links))
	for i, l := range links {
		out[i] = linkToResponse(l)
	}
	return gen.ListLinks200JSONResponse{Links: out}, nil
}

// RegisterLink handles POST /trips/{id}/links.
func (s *Server) RegisterLink(ctx context.Context, req gen.RegisterLinkRequestObject) (gen.RegisterLinkResponseObject, error) {
	if req.Body == nil {
		return gen.RegisterLink400JSONResponse(requestBody("request body is required")), nil
	}

	created, err := s.trips.RegisterLink(ctx, req.Id, domain.Link{Title: req.Body.Title, URL: req.Body.Url})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.RegisterLink404JSONResponse(notFoundBody("trip not found")), nil
		case errors.Is(err, domain.ErrValidation):
			return gen.RegisterLink400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.RegisterLink200JSONResponse{LinkId: created.ID}, nil
}
