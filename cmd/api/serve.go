package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/notify"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/migrations"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Apply pending migrations and serve the HTTP API.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "skip-migrate", Usage: "Do not apply pending migrations on startup.", EnvVars: []string{"SKIP_MIGRATE"}},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			logger := newLogger(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// --- Database -----------------------------------------------------
			// New() does not open connections; Ping verifies the DB is reachable
			// before accepting traffic.
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("create database pool: %w", err)
			}
			defer pool.Close()
			if err := pool.Ping(ctx); err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			logger.Info("database connection established")

			if !c.Bool("skip-migrate") {
				db := stdlib.OpenDBFromPool(pool)
				err := migrations.Up(ctx, db, logger)
				db.Close()
				if err != nil {
					return err
				}
			}

			// --- Notifiers ----------------------------------------------------
			notifier, err := notify.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := notifier.Close(); err != nil {
					logger.Warn("closing notifiers", "error", err)
				}
			}()

			// --- Wiring -------------------------------------------------------
			trips := repo.NewTripRepo(pool)
			participants := repo.NewParticipantRepo(pool)
			activities := repo.NewActivityRepo(pool)
			links := repo.NewLinkRepo(pool)

			tripSvc := service.NewTripService(
				trips,
				service.NewParticipantService(participants, notifier),
				service.NewActivityService(activities),
				service.NewLinkService(links),
				repo.NewTxManager(pool),
				service.WithLogger(logger),
			)
			exportSvc := service.NewExportService(trips, activities, participants, links)
			api := handler.NewServer(tripSvc, exportSvc, logger)

			// --- Router -------------------------------------------------------
			// RequestID → RealIP → SlogLogger → Recoverer → CORS → body limit.
			r := chi.NewRouter()
			r.Use(chimiddleware.RequestID)
			r.Use(chimiddleware.RealIP)
			r.Use(middleware.NewSlogLogger(logger))
			r.Use(chimiddleware.Recoverer)
			r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
			r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
			r.Mount("/", api.Routes())

			// --- HTTP Server --------------------------------------------------
			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      10 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
			}

			// Give in-flight requests up to 15 seconds to complete.
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}
}
