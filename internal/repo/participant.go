package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
// Participants are always scoped to their owning trip.
type ParticipantRepo interface {
	// Create inserts a participant for a trip, or returns the existing row when
	// the email is already registered on that trip.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// ListByTripID returns all participants of a trip ordered by creation time.
	// An unknown trip yields an empty slice.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

// Create upserts on (trip_id, email). The DO UPDATE SET trick forces the
// RETURNING clause to fire on conflict so the existing row comes back.
func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	const q = `
		INSERT INTO participants (trip_id, name, email)
		VALUES (@trip_id, NULLIF(@name, ''), @email)
		ON CONFLICT (trip_id, email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, trip_id, name, email, is_confirmed, created_at`

	args := pgx.NamedArgs{
		"trip_id": p.TripID,
		"name":    p.Name,
		"email":   p.Email,
	}

	row := conn(ctx, r.db).QueryRow(ctx, q, args)
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return result, nil
}

// ListByTripID returns the participants of a trip, oldest first.
func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_confirmed, created_at
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY created_at, email`

	rows, err := conn(ctx, r.db).Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: rows: %w", err)
	}
	return participants, nil
}

// scanParticipant maps a single database row into a domain.Participant.
// The nullable name column becomes an empty string.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
		name   pgtype.Text
	)
	err := s.Scan(&id, &tripID, &name, &p.Email, &p.IsConfirmed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	if name.Valid {
		p.Name = name.String
	}
	return p, nil
}
