package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/config"
	httptransport "github.com/example/conference-scheduler/internal/http"
	"github.com/example/conference-scheduler/internal/logging"
	"github.com/example/conference-scheduler/internal/persistence/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	pool, err := sqlite.NewConnectionPool(cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	store, err := sqlite.NewSnapshotStore(pool)
	if err != nil {
		logger.Error("failed to bootstrap storage", "error", err)
		os.Exit(1)
	}

	state := application.NewState()

	eventService := application.NewEventServiceWithLogger(state, logger)
	roomService := application.NewRoomServiceWithLogger(state, logger)
	userService := application.NewUserServiceWithLogger(state, logger)
	authService := application.NewAuthService(state, []byte(cfg.TokenSecret), cfg.TokenTTL, time.Now, logger)
	statsService := application.NewStatisticsServiceWithLogger(state, logger, cfg.StatsCacheTTL, time.Now)
	snapshotService := application.NewSnapshotService(state, store, cfg.SnapshotKeep, uuid.NewString, time.Now, logger)

	if err := snapshotService.RestoreLatest(ctx); err != nil {
		logger.Error("failed to restore latest snapshot", "error", err)
		os.Exit(1)
	}

	if err := bootstrapOrganizer(ctx, userService, cfg); err != nil {
		logger.Error("failed to bootstrap organizer account", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authService, userService, logger),
		Users:        httptransport.NewUserHandler(userService, logger),
		Rooms:        httptransport.NewRoomHandler(roomService, logger),
		Events:       httptransport.NewEventHandler(eventService, logger),
		Schedules:    httptransport.NewScheduleHandler(eventService, logger),
		Statistics:   httptransport.NewStatisticsHandler(statsService, logger),
		Snapshots:    httptransport.NewSnapshotHandler(snapshotService, logger),
		Authenticate: httptransport.RequireToken(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("conference API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}

	// Persist the final state before exiting.
	saveCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if id, err := snapshotService.Save(saveCtx); err != nil {
		logger.Error("failed to save shutdown snapshot", "error", err)
	} else {
		logger.Info("saved shutdown snapshot", "snapshot_id", id)
	}
}

// bootstrapOrganizer creates the configured organizer account when it does
// not already exist, so a fresh deployment has a principal that can pass the
// organizer gates.
func bootstrapOrganizer(ctx context.Context, users *application.UserService, cfg config.Config) error {
	if cfg.OrganizerUsername == "" {
		return nil
	}

	if _, err := users.GetUser(ctx, cfg.OrganizerUsername); err == nil {
		return nil
	} else if !errors.Is(err, application.ErrNotFound) {
		return err
	}

	system := application.Principal{Username: "system", Permission: conference.PermissionOrganizer}
	_, err := users.CreateAccount(ctx, application.CreateAccountParams{
		Principal: system,
		Input: application.UserInput{
			Username:   cfg.OrganizerUsername,
			Password:   cfg.OrganizerPassword,
			Permission: conference.PermissionOrganizer,
		},
	})
	return err
}
