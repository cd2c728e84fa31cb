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

// ActivityRepo defines the persistence operations for Activities.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// ListByTripID returns all activities for a trip ordered by occurs_at ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, title, occurs_at)
		VALUES (@trip_id, @title, @occurs_at)
		RETURNING id, trip_id, title, occurs_at, created_at`

	args := pgx.NamedArgs{
		"trip_id":   a.TripID,
		"title":     a.Title,
		"occurs_at": a.OccursAt,
	}

	row := conn(ctx, r.db).QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT id, trip_id, title, occurs_at, created_at
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY occurs_at, created_at`

	rows, err := conn(ctx, r.db).Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: rows: %w", err)
	}
	return activities, nil
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &a.Title, &a.OccursAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	a.OccursAt = a.OccursAt.UTC()
	return a, nil
}
