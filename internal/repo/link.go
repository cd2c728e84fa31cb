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

// LinkRepo defines the persistence operations for Links.
type LinkRepo interface {
	// Create inserts a new link and returns the persisted record.
	Create(ctx context.Context, l domain.Link) (domain.Link, error)

	// ListByTripID returns all links for a trip in insertion order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

type pgLinkRepo struct {
	db db
}

// NewLinkRepo constructs a LinkRepo backed by the provided db connection.
func NewLinkRepo(db db) LinkRepo {
	return &pgLinkRepo{db: db}
}

func (r *pgLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	const q = `
		INSERT INTO links (trip_id, title, url)
		VALUES (@trip_id, @title, @url)
		RETURNING id, trip_id, title, url, created_at`

	args := pgx.NamedArgs{
		"trip_id": l.TripID,
		"title":   l.Title,
		"url":     l.URL,
	}

	row := conn(ctx, r.db).QueryRow(ctx, q, args)
	result, err := scanLink(row)
	if err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLinkRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	const q = `
		SELECT id, trip_id, title, url, created_at
		FROM links
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := conn(ctx, r.db).Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LinkRepo.ListByTripID: scan: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByTripID: rows: %w", err)
	}
	return links, nil
}

func scanLink(s scanner) (domain.Link, error) {
	var (
		l      domain.Link
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &l.Title, &l.URL, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Link{}, domain.ErrNotFound
		}
		return domain.Link{}, err
	}
	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	return l, nil
}
