package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// Hand-written test doubles. Each method is a function field. Set only the
// ones your test needs; calling an unset one panics, which flags unexpected calls.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}

type mockParticipantRepo struct {
	create       func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

func (m *mockParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.create(ctx, p)
}
func (m *mockParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}

type mockActivityRepo struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}

type mockLinkRepo struct {
	create       func(ctx context.Context, l domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

// passthroughTx runs fn directly, standing in for a real transaction.
// committed reports whether the last unit of work returned nil.
type passthroughTx struct {
	calls     int
	committed bool
}

func (m *passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	err := fn(ctx)
	m.committed = err == nil
	return err
}

type mockParticipantManager struct {
	registerMany func(ctx context.Context, trip domain.Trip, emails []string) ([]domain.Participant, error)
	registerOne  func(ctx context.Context, trip domain.Trip, email string) (domain.Participant, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	notifyAll    func(ctx context.Context, trip domain.Trip) error
	notifyOne    func(ctx context.Context, trip domain.Trip, p domain.Participant) error
}

func (m *mockParticipantManager) RegisterParticipantsToTrip(ctx context.Context, trip domain.Trip, emails []string) ([]domain.Participant, error) {
	return m.registerMany(ctx, trip, emails)
}
func (m *mockParticipantManager) RegisterParticipantToTrip(ctx context.Context, trip domain.Trip, email string) (domain.Participant, error) {
	return m.registerOne(ctx, trip, email)
}
func (m *mockParticipantManager) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantManager) TriggerConfirmationToParticipants(ctx context.Context, trip domain.Trip) error {
	return m.notifyAll(ctx, trip)
}
func (m *mockParticipantManager) TriggerConfirmationToParticipant(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	return m.notifyOne(ctx, trip, p)
}

type mockActivityManager struct {
	register     func(ctx context.Context, trip domain.Trip, a domain.Activity) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityManager) Register(ctx context.Context, trip domain.Trip, a domain.Activity) (domain.Activity, error) {
	return m.register(ctx, trip, a)
}
func (m *mockActivityManager) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}

type mockLinkManager struct {
	register     func(ctx context.Context, trip domain.Trip, l domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkManager) Register(ctx context.Context, trip domain.Trip, l domain.Link) (domain.Link, error) {
	return m.register(ctx, trip, l)
}
func (m *mockLinkManager) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

// recordingNotifier collects every confirmation it is asked to send.
type recordingNotifier struct {
	sent []domain.Participant
	err  func(p domain.Participant) error
}

func (n *recordingNotifier) SendConfirmation(_ context.Context, _ domain.Trip, p domain.Participant) error {
	n.sent = append(n.sent, p)
	if n.err != nil {
		return n.err(p)
	}
	return nil
}

// batchingNotifier records each SendConfirmations call; SendConfirmation is unset.
type batchingNotifier struct {
	batches [][]domain.Participant
	err     error
}

func (n *batchingNotifier) SendConfirmation(context.Context, domain.Trip, domain.Participant) error {
	panic("batchingNotifier: SendConfirmation called, want SendConfirmations")
}

func (n *batchingNotifier) SendConfirmations(_ context.Context, _ domain.Trip, ps []domain.Participant) error {
	n.batches = append(n.batches, ps)
	return n.err
}

// compile-time checks.
var (
	_ repo.TripRepo              = (*mockTripRepo)(nil)
	_ repo.ParticipantRepo       = (*mockParticipantRepo)(nil)
	_ repo.ActivityRepo          = (*mockActivityRepo)(nil)
	_ repo.LinkRepo              = (*mockLinkRepo)(nil)
	_ repo.TxManager             = (*passthroughTx)(nil)
	_ service.ParticipantManager = (*mockParticipantManager)(nil)
	_ service.ActivityManager    = (*mockActivityManager)(nil)
	_ service.LinkManager        = (*mockLinkManager)(nil)
	_ service.Notifier           = (*recordingNotifier)(nil)
	_ service.BatchNotifier      = (*batchingNotifier)(nil)
	_ service.ParticipantManager = (*service.ParticipantService)(nil)
	_ service.ActivityManager    = (*service.ActivityService)(nil)
	_ service.LinkManager        = (*service.LinkService)(nil)
)
