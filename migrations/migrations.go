// Package migrations embeds the SQL migration files and drives them through
// the goose provider API. The serve and migrate commands and the integration
// tests all go through this package.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS

// NewProvider returns a goose provider for the embedded migrations on db.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return nil, fmt.Errorf("migrations.NewProvider: %w", err)
	}
	return p, nil
}

// Up applies every pending migration and logs each one applied.
func Up(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	p, err := NewProvider(db)
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version, "file", r.Source.Path, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

// DownTo rolls back migrations until the schema is at version.
// DownTo(ctx, db, log, 0) removes every table.
func DownTo(ctx context.Context, db *sql.DB, log *slog.Logger, version int64) error {
	p, err := NewProvider(db)
	if err != nil {
		return err
	}
	results, err := p.DownTo(ctx, version)
	if err != nil {
		return fmt.Errorf("migrations.DownTo: %w", err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration rolled back",
			"version", r.Source.Version, "file", r.Source.Path)
	}
	return nil
}
