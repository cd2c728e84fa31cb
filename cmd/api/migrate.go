package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/urfave/cli/v2"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/migrations"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema.",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply every pending migration.",
				Action: func(c *cli.Context) error {
					db, err := openMigrationDB()
					if err != nil {
						return err
					}
					defer db.Close()
					return migrations.Up(c.Context, db, newLogger(c.String("log-level")))
				},
			},
			{
				Name:      "down-to",
				Usage:     "Roll back migrations until the schema is at the given version.",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "version", Usage: "Target schema version (0 drops everything).", Required: true},
				},
				Action: func(c *cli.Context) error {
					db, err := openMigrationDB()
					if err != nil {
						return err
					}
					defer db.Close()
					return migrations.DownTo(c.Context, db, newLogger(c.String("log-level")), c.Int64("version"))
				},
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		},
	}
}

// openMigrationDB opens DATABASE_URL through database/sql, which goose requires.
func openMigrationDB() (*sql.DB, error) {
	dsn, err := config.LookupDatabaseURL()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
