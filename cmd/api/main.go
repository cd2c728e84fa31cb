// Package main is the entry point for the Trip Planner API server.
// Its sole responsibility is wiring dependencies together and running the
// requested command. No business logic belongs here.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	app := &cli.App{
		Name:           "trip-planner",
		Usage:          "Plan trips, invite participants and schedule activities over HTTP.",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the process-wide JSON logger and installs it as the slog default.
// Unknown levels fall back to info.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger
}
