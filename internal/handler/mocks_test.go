package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create            func(ctx context.Context, req domain.TripRequest) (domain.Trip, error)
	getDetails        func(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error)
	update            func(ctx context.Context, id uuid.UUID, req domain.TripRequest) (domain.Trip, error)
	confirm           func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listActivities    func(ctx context.Context, id uuid.UUID) ([]domain.Activity, error)
	registerActivity  func(ctx context.Context, id uuid.UUID, a domain.Activity) (domain.Activity, error)
	listParticipants  func(ctx context.Context, id uuid.UUID) ([]domain.Participant, error)
	inviteParticipant func(ctx context.Context, id uuid.UUID, email string) (domain.Participant, error)
	listLinks         func(ctx context.Context, id uuid.UUID) ([]domain.Link, error)
	registerLink      func(ctx context.Context, id uuid.UUID, l domain.Link) (domain.Link, error)
}

func (m *mockTripServicer) Create(ctx context.Context, req domain.TripRequest) (domain.Trip, error) {
	return m.create(ctx, req)
}
func (m *mockTripServicer) GetDetails(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	return m.getDetails(ctx, id)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, req domain.TripRequest) (domain.Trip, error) {
	return m.update(ctx, id, req)
}
func (m *mockTripServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.confirm(ctx, id)
}
func (m *mockTripServicer) ListActivities(ctx context.Context, id uuid.UUID) ([]domain.Activity, error) {
	return m.listActivities(ctx, id)
}
func (m *mockTripServicer) RegisterActivity(ctx context.Context, id uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.registerActivity(ctx, id, a)
}
func (m *mockTripServicer) ListParticipants(ctx context.Context, id uuid.UUID) ([]domain.Participant, error) {
	return m.listParticipants(ctx, id)
}
func (m *mockTripServicer) InviteParticipant(ctx context.Context, id uuid.UUID, email string) (domain.Participant, error) {
	return m.inviteParticipant(ctx, id, email)
}
func (m *mockTripServicer) ListLinks(ctx context.Context, id uuid.UUID) ([]domain.Link, error) {
	return m.listLinks(ctx, id)
}
func (m *mockTripServicer) RegisterLink(ctx context.Context, id uuid.UUID, l domain.Link) (domain.Link, error) {
	return m.registerLink(ctx, id, l)
}

type mockExporter struct {
	itinerary func(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error)
}

func (m *mockExporter) Itinerary(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error) {
	return m.itinerary(ctx, tripID)
}

// compile-time checks.
var (
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.ItineraryExporter = (*mockExporter)(nil)
)

// ---- helpers ---------------------------------------------------------------

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newHTTPHandler wires a Server with the given mocks into the real chi router.
func newHTTPHandler(svc handler.TripServicer) http.Handler {
	return handler.NewServer(svc, &mockExporter{}, discardLogger).Routes()
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Destination: "Lisbon",
		StartsAt:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends a request through h and returns the recorder.
func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError parses the shared error envelope.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) gen.ErrorDetail {
	t.Helper()
	var resp gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
