package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// ---- helpers ---------------------------------------------------------------

// fixedNow is the clock used by every TripService under test.
var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func lisbonRequest() domain.TripRequest {
	return domain.TripRequest{
		Destination:    "Lisbon",
		StartsAt:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		EmailsToInvite: []string{"a@x.com"},
	}
}

func lisbonTrip() domain.Trip {
	req := lisbonRequest()
	return domain.Trip{
		ID:          uuid.New(),
		Destination: req.Destination,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
}

// tripDeps bundles the collaborators of a TripService so each test can
// override only what it exercises.
type tripDeps struct {
	trips        *mockTripRepo
	participants *mockParticipantManager
	activities   *mockActivityManager
	links        *mockLinkManager
	tx           *passthroughTx
}

func newTripDeps() *tripDeps {
	return &tripDeps{
		trips:        &mockTripRepo{},
		participants: &mockParticipantManager{},
		activities:   &mockActivityManager{},
		links:        &mockLinkManager{},
		tx:           &passthroughTx{},
	}
}

func (d *tripDeps) service() *service.TripService {
	return service.NewTripService(d.trips, d.participants, d.activities, d.links, d.tx,
		service.WithClock(func() time.Time { return fixedNow }))
}

// storedTrip wires getByID to return trip for its own ID and ErrNotFound otherwise.
func (d *tripDeps) storedTrip(trip domain.Trip) {
	d.trips.getByID = func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
		if id == trip.ID {
			return trip, nil
		}
		return domain.Trip{}, domain.ErrNotFound
	}
}

// echoUpdates makes Update return whatever it receives.
func (d *tripDeps) echoUpdates() {
	d.trips.update = func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil }
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	d := newTripDeps()
	var stored domain.Trip
	d.trips.create = func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
		trip.ID = uuid.New()
		stored = trip
		return trip, nil
	}
	var invited []string
	d.participants.registerMany = func(_ context.Context, trip domain.Trip, emails []string) ([]domain.Participant, error) {
		assert.Equal(t, stored.ID, trip.ID, "invitees must be registered against the persisted trip")
		invited = emails
		return []domain.Participant{{ID: uuid.New(), TripID: trip.ID, Email: emails[0]}}, nil
	}

	got, err := d.service().Create(context.Background(), lisbonRequest())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Lisbon", got.Destination)
	assert.False(t, got.IsConfirmed, "new trips start as drafts")
	assert.Equal(t, []string{"a@x.com"}, invited)
	assert.Equal(t, 1, d.tx.calls)
	assert.True(t, d.tx.committed)
}

func TestTripService_Create_TrimsDestination(t *testing.T) {
	d := newTripDeps()
	d.trips.create = func(_ context.Context, trip domain.Trip) (domain.Trip, error) { return trip, nil }
	d.participants.registerMany = func(context.Context, domain.Trip, []string) ([]domain.Participant, error) { return nil, nil }

	req := lisbonRequest()
	req.Destination = "  Lisbon "
	got, err := d.service().Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Destination)
}

func TestTripService_Create_InvalidDateRange(t *testing.T) {
	tests := []struct {
		name string
		ends func(start time.Time) time.Time
	}{
		{"ends before start", func(s time.Time) time.Time { return s.Add(-time.Hour) }},
		{"ends at start", func(s time.Time) time.Time { return s }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// No repo functions set: any persistence call would panic.
			d := newTripDeps()

			req := lisbonRequest()
			req.EndsAt = tc.ends(req.StartsAt)
			_, err := d.service().Create(context.Background(), req)

			assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, d.tx.calls)
		})
	}
}

func TestTripService_Create_PastStartDate(t *testing.T) {
	d := newTripDeps()

	req := lisbonRequest()
	req.StartsAt = fixedNow.Add(-time.Second)
	req.EndsAt = fixedNow.AddDate(0, 0, 3)
	_, err := d.service().Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrPastStartDate)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, d.tx.calls)
}

func TestTripService_Create_StartingNowIsAllowed(t *testing.T) {
	d := newTripDeps()
	d.trips.create = func(_ context.Context, trip domain.Trip) (domain.Trip, error) { return trip, nil }
	d.participants.registerMany = func(context.Context, domain.Trip, []string) ([]domain.Participant, error) { return nil, nil }

	req := lisbonRequest()
	req.StartsAt = fixedNow
	_, err := d.service().Create(context.Background(), req)

	assert.NoError(t, err)
}

func TestTripService_Create_MissingDestination(t *testing.T) {
	d := newTripDeps()

	req := lisbonRequest()
	req.Destination = "   "
	_, err := d.service().Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_InviteFailureRollsBack(t *testing.T) {
	d := newTripDeps()
	d.trips.create = func(_ context.Context, trip domain.Trip) (domain.Trip, error) { return trip, nil }
	d.participants.registerMany = func(context.Context, domain.Trip, []string) ([]domain.Participant, error) {
		return nil, errors.New("db exploded")
	}

	_, err := d.service().Create(context.Background(), lisbonRequest())

	require.Error(t, err)
	assert.False(t, d.tx.committed, "the unit of work must fail so the trip insert is rolled back")
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	d := newTripDeps()
	d.trips.create = func(context.Context, domain.Trip) (domain.Trip, error) { return domain.Trip{}, repoErr }

	_, err := d.service().Create(context.Background(), lisbonRequest())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

func TestTripService_Create_InvalidInviteeWritesNothing(t *testing.T) {
	// No repo functions set: any persistence call would panic.
	d := newTripDeps()

	req := lisbonRequest()
	req.EmailsToInvite = []string{"a@x.com", "not-an-email"}
	_, err := d.service().Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, d.tx.calls, "invitees are validated before the transaction opens")
}

func TestTripService_Create_PassesNormalizedInvitees(t *testing.T) {
	d := newTripDeps()
	d.trips.create = func(_ context.Context, trip domain.Trip) (domain.Trip, error) { return trip, nil }
	var invited []string
	d.participants.registerMany = func(_ context.Context, _ domain.Trip, emails []string) ([]domain.Participant, error) {
		invited = emails
		return nil, nil
	}

	req := lisbonRequest()
	req.EmailsToInvite = []string{"A@x.com ", "a@x.com", "b@x.com"}
	_, err := d.service().Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, invited)
}

// ---- GetDetails ------------------------------------------------------------

func TestTripService_GetDetails_Found(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)

	got, found, err := d.service().GetDetails(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, trip.ID, got.ID)
}

func TestTripService_GetDetails_UnknownIDIsEmptyNotError(t *testing.T) {
	d := newTripDeps()
	d.storedTrip(lisbonTrip())

	_, found, err := d.service().GetDetails(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.False(t, found)
}

func TestTripService_GetDetails_RepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	d := newTripDeps()
	d.trips.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) { return domain.Trip{}, repoErr }

	_, found, err := d.service().GetDetails(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repoErr)
	assert.False(t, found)
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_Valid(t *testing.T) {
	trip := lisbonTrip()
	trip.IsConfirmed = true
	d := newTripDeps()
	d.storedTrip(trip)
	d.echoUpdates()

	req := lisbonRequest()
	req.Destination = "Porto"
	req.EndsAt = req.EndsAt.AddDate(0, 0, 2)
	got, err := d.service().Update(context.Background(), trip.ID, req)

	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
	assert.Equal(t, "Porto", got.Destination)
	assert.True(t, got.EndsAt.Equal(req.EndsAt))
	assert.True(t, got.IsConfirmed, "update must not reset the confirmation state")
}

func TestTripService_Update_PastStartIsAllowed(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)
	d.echoUpdates()

	req := lisbonRequest()
	req.StartsAt = fixedNow.AddDate(0, 0, -2)
	req.EndsAt = fixedNow.AddDate(0, 0, 2)
	_, err := d.service().Update(context.Background(), trip.ID, req)

	assert.NoError(t, err)
}

func TestTripService_Update_InvalidDateRange(t *testing.T) {
	d := newTripDeps()

	req := lisbonRequest()
	req.StartsAt, req.EndsAt = req.EndsAt, req.StartsAt
	_, err := d.service().Update(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestTripService_Update_NotFound(t *testing.T) {
	d := newTripDeps()
	d.storedTrip(lisbonTrip())

	_, err := d.service().Update(context.Background(), uuid.New(), lisbonRequest())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Confirm ---------------------------------------------------------------

func TestTripService_Confirm(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)
	d.echoUpdates()
	var notified []domain.Trip
	d.participants.notifyAll = func(_ context.Context, t domain.Trip) error {
		notified = append(notified, t)
		return nil
	}

	got, err := d.service().Confirm(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
	require.Len(t, notified, 1)
	assert.True(t, notified[0].IsConfirmed, "participants are notified about the confirmed trip")
}

func TestTripService_Confirm_NotifiesAfterClientCancels(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)
	ctx, cancel := context.WithCancel(context.Background())
	d.trips.update = func(_ context.Context, t domain.Trip) (domain.Trip, error) {
		// The client hangs up right after the confirmation is committed.
		cancel()
		return t, nil
	}
	var notifyErr error
	d.participants.notifyAll = func(ctx context.Context, _ domain.Trip) error {
		notifyErr = ctx.Err()
		return nil
	}

	_, err := d.service().Confirm(ctx, trip.ID)

	require.NoError(t, err)
	assert.NoError(t, notifyErr, "delivery runs on a context detached from the request")
}

func TestTripService_Confirm_TwiceStaysConfirmedAndNotifiesAgain(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.trips.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil }
	d.trips.update = func(_ context.Context, t domain.Trip) (domain.Trip, error) {
		trip = t
		return t, nil
	}
	notifications := 0
	d.participants.notifyAll = func(context.Context, domain.Trip) error {
		notifications++
		return nil
	}
	svc := d.service()

	_, err := svc.Confirm(context.Background(), trip.ID)
	require.NoError(t, err)
	got, err := svc.Confirm(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
	assert.Equal(t, 2, notifications)
}

func TestTripService_Confirm_NotificationFailureIsNotFatal(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)
	d.echoUpdates()
	d.participants.notifyAll = func(context.Context, domain.Trip) error { return errors.New("broker down") }

	got, err := d.service().Confirm(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
}

func TestTripService_Confirm_NotFound(t *testing.T) {
	d := newTripDeps()
	d.storedTrip(lisbonTrip())

	_, err := d.service().Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

// ---- Activities ------------------------------------------------------------

func TestTripService_RegisterActivity_Window(t *testing.T) {
	trip := lisbonTrip()
	tests := []struct {
		name     string
		occursAt time.Time
		wantErr  error
	}{
		{"one second before start", time.Date(2029, 12, 31, 23, 59, 59, 0, time.UTC), domain.ErrActivityOutOfRange},
		{"exactly at start", trip.StartsAt, nil},
		{"inside window", trip.StartsAt.AddDate(0, 0, 3), nil},
		{"exactly at end", trip.EndsAt, nil},
		{"one second after end", trip.EndsAt.Add(time.Second), domain.ErrActivityOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTripDeps()
			d.storedTrip(trip)
			d.activities.register = func(_ context.Context, tr domain.Trip, a domain.Activity) (domain.Activity, error) {
				a.ID = uuid.New()
				a.TripID = tr.ID
				return a, nil
			}

			got, err := d.service().RegisterActivity(context.Background(), trip.ID,
				domain.Activity{Title: "Tram 28", OccursAt: tc.occursAt})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, trip.ID, got.TripID)
		})
	}
}

func TestTripService_RegisterActivity_TripNotFound(t *testing.T) {
	d := newTripDeps()
	d.storedTrip(lisbonTrip())

	_, err := d.service().RegisterActivity(context.Background(), uuid.New(),
		domain.Activity{Title: "Tram 28", OccursAt: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)})

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripService_ListActivities_Delegates(t *testing.T) {
	id := uuid.New()
	d := newTripDeps()
	d.activities.listByTripID = func(_ context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
		assert.Equal(t, id, tripID)
		return []domain.Activity{{Title: "A"}, {Title: "B"}}, nil
	}

	got, err := d.service().ListActivities(context.Background(), id)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// ---- Participants ----------------------------------------------------------

func TestTripService_InviteParticipant_DraftTripDoesNotNotify(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)
	d.participants.registerOne = func(_ context.Context, tr domain.Trip, email string) (domain.Participant, error) {
		return domain.Participant{ID: uuid.New(), TripID: tr.ID, Email: email}, nil
	}
	// notifyOne left unset: calling it would panic.

	got, err := d.service().InviteParticipant(context.Background(), trip.ID, "b@x.com")

	require.NoError(t, err)
	assert.Equal(t, "b@x.com", got.Email)
}

func TestTripService_InviteParticipant_ConfirmedTripNotifiesImmediately(t *testing.T) {
	trip := lisbonTrip()
	trip.IsConfirmed = true
	d := newTripDeps()
	d.storedTrip(trip)
	d.participants.registerOne = func(_ context.Context, tr domain.Trip, email string) (domain.Participant, error) {
		return domain.Participant{ID: uuid.New(), TripID: tr.ID, Email: email}, nil
	}
	var notified []domain.Participant
	d.participants.notifyOne = func(_ context.Context, _ domain.Trip, p domain.Participant) error {
		notified = append(notified, p)
		return nil
	}

	got, err := d.service().InviteParticipant(context.Background(), trip.ID, "b@x.com")

	require.NoError(t, err)
	require.Len(t, notified, 1)
	assert.Equal(t, got.ID, notified[0].ID)
}

func TestTripService_InviteParticipant_NotifiesAfterClientCancels(t *testing.T) {
	trip := lisbonTrip()
	trip.IsConfirmed = true
	d := newTripDeps()
	d.storedTrip(trip)
	ctx, cancel := context.WithCancel(context.Background())
	d.participants.registerOne = func(_ context.Context, tr domain.Trip, email string) (domain.Participant, error) {
		cancel()
		return domain.Participant{ID: uuid.New(), TripID: tr.ID, Email: email}, nil
	}
	var notifyErr error
	d.participants.notifyOne = func(ctx context.Context, _ domain.Trip, _ domain.Participant) error {
		notifyErr = ctx.Err()
		return nil
	}

	_, err := d.service().InviteParticipant(ctx, trip.ID, "b@x.com")

	require.NoError(t, err)
	assert.NoError(t, notifyErr)
}

func TestTripService_InviteParticipant_NotFound(t *testing.T) {
	d := newTripDeps()
	d.storedTrip(lisbonTrip())

	_, err := d.service().InviteParticipant(context.Background(), uuid.New(), "b@x.com")

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripService_InviteParticipant_ValidationError(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)
	d.participants.registerOne = func(context.Context, domain.Trip, string) (domain.Participant, error) {
		return domain.Participant{}, domain.ErrValidation
	}

	_, err := d.service().InviteParticipant(context.Background(), trip.ID, "nope")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_ListParticipants_Delegates(t *testing.T) {
	d := newTripDeps()
	d.participants.listByTripID = func(context.Context, uuid.UUID) ([]domain.Participant, error) {
		return []domain.Participant{{Email: "a@x.com"}}, nil
	}

	got, err := d.service().ListParticipants(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// ---- Links -----------------------------------------------------------------

func TestTripService_RegisterLink(t *testing.T) {
	trip := lisbonTrip()
	d := newTripDeps()
	d.storedTrip(trip)
	d.links.register = func(_ context.Context, tr domain.Trip, l domain.Link) (domain.Link, error) {
		l.ID = uuid.New()
		l.TripID = tr.ID
		return l, nil
	}

	got, err := d.service().RegisterLink(context.Background(), trip.ID,
		domain.Link{Title: "Hotel", URL: "https://example.com"})

	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.TripID)
}

func TestTripService_RegisterLink_NotFound(t *testing.T) {
	d := newTripDeps()
	d.storedTrip(lisbonTrip())

	_, err := d.service().RegisterLink(context.Background(), uuid.New(),
		domain.Link{Title: "Hotel", URL: "https://example.com"})

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripService_ListLinks_Delegates(t *testing.T) {
	d := newTripDeps()
	d.links.listByTripID = func(context.Context, uuid.UUID) ([]domain.Link, error) {
		return []domain.Link{}, nil
	}

	got, err := d.service().ListLinks(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, got)
}
