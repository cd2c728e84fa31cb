// Package handler implements the HTTP handlers for the Trip Planner API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into resource-specific files (trip.go, activity.go, etc.)
// but share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, req domain.TripRequest) (domain.Trip, error)
	GetDetails(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error)
	Update(ctx context.Context, id uuid.UUID, req domain.TripRequest) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListActivities(ctx context.Context, id uuid.UUID) ([]domain.Activity, error)
	RegisterActivity(ctx context.Context, id uuid.UUID, a domain.Activity) (domain.Activity, error)
	ListParticipants(ctx context.Context, id uuid.UUID) ([]domain.Participant, error)
	InviteParticipant(ctx context.Context, id uuid.UUID, email string) (domain.Participant, error)
	ListLinks(ctx context.Context, id uuid.UUID) ([]domain.Link, error)
	RegisterLink(ctx context.Context, id uuid.UUID, l domain.Link) (domain.Link, error)
}

// ItineraryExporter provides the read-only view used by the calendar export.
type ItineraryExporter interface {
	Itinerary(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via Routes.
type Server struct {
	trips  TripServicer
	export ItineraryExporter
	log    *slog.Logger
	now    func() time.Time
}

var _ gen.StrictServerInterface = (*Server)(nil)

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, export ItineraryExporter, log *slog.Logger) *Server {
	return &Server{trips: trips, export: export, log: log, now: time.Now}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, slog.Default())
}

// Routes mounts the generated strict handler on a chi router.
// Undecodable bodies, malformed path parameters, unknown routes and
// unexpected handler errors all answer with the shared JSON error body.
// Cross-cutting middleware (request id, logging, CORS, body limit) is applied
// by the caller so tests can exercise the bare routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	strict := gen.NewStrictHandlerWithOptions(s, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.requestError,
		ResponseErrorHandlerFunc: s.responseError,
	})
	gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.paramError,
	})
	return r
}
