package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

func TestLinkRepo_CreateAndList(t *testing.T) {
	tx := newTestTx(t)
	trip := createTrip(t, repo.NewTripRepo(tx))
	r := repo.NewLinkRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Link{TripID: trip.ID, Title: "Hotel", URL: "https://example.com/booking"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := r.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
	assert.Equal(t, "Hotel", got[0].Title)
	assert.Equal(t, "https://example.com/booking", got[0].URL)
}

func TestLinkRepo_ListByTripID_UnknownTrip(t *testing.T) {
	r := repo.NewLinkRepo(newTestTx(t))

	got, err := r.ListByTripID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, got)
}
