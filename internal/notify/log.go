package notify

import (
	"context"
	"log/slog"

	"github.com/pkordes/trip-planner/internal/domain"
)

// LogNotifier writes each confirmation to the structured log.
// It is the default transport for local development.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier returns a LogNotifier writing to log.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// SendConfirmation implements service.Notifier. It never fails.
func (n *LogNotifier) SendConfirmation(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	n.log.InfoContext(ctx, "trip confirmation",
		"trip_id", trip.ID,
		"participant_id", p.ID,
		"email", p.Email,
		"destination", trip.Destination,
		"starts_at", trip.StartsAt,
		"ends_at", trip.EndsAt,
	)
	return nil
}
