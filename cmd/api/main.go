// Package main is the entry point for the Travel Planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/travel-planner/backend/internal/app"
	"github.com/pkordes/travel-planner/backend/internal/config"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default logger writes to stderr before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := app.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	ctx := context.Background()
	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	svc := handler.Services{
		Destinations: store,
		Trips:        store,
		Activities:   store,
		Expenses:     store,
		Groups:       store,
		Export:       store,
	}

	// --- Remote sync ------------------------------------------------------
	// Assigned only when configured so that Services.Sync stays a nil interface.
	if syncer := app.NewSyncer(cfg, store, logger); syncer != nil {
		svc.Sync = syncer
		if cfg.SyncOnStart {
			if res, err := syncer.Run(ctx); err != nil {
				slog.Error("initial sync failed", "error", err)
			} else {
				slog.Info("initial sync done", "run_id", res.RunID,
					"destinations", res.Destinations, "trips", res.Trips)
			}
		}
	}

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → Logger → CORS → MaxBodySize → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(chimiddleware.Recoverer)

	r.Mount("/", handler.NewServer(svc).Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "in_memory", cfg.InMemory())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
