// Package app assembles the store from configuration. Both binaries share it
// so the API server and travelctl always see the same backend.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkordes/travel-planner/backend/internal/config"
	"github.com/pkordes/travel-planner/backend/internal/remote"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// NewLogger returns the JSON logger used by every binary, writing to w.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// OpenStore builds a Store on Postgres when a database is configured and on
// the in-memory backend otherwise. Pending migrations are applied first. The
// returned close function releases the pool and is safe to call once.
func OpenStore(ctx context.Context, cfg config.Config, log *slog.Logger) (*service.Store, func(), error) {
	opts := []service.Option{
		service.WithLocation(cfg.Location),
		service.WithActivityRangeCheck(cfg.EnforceActivityRange),
		service.WithLogger(log),
	}

	if cfg.InMemory() {
		log.Warn("DATABASE_URL not set; using in-memory storage")
		return service.NewStore(repo.NewMemoryRepos(), opts...), func() {}, nil
	}

	pool, err := repo.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("app.OpenStore: %w", err)
	}
	applied, err := repo.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("app.OpenStore: %w", err)
	}
	log.Info("database ready", "migrations_applied", applied)

	return service.NewStore(repo.NewPgRepos(pool), opts...), pool.Close, nil
}

// NewSyncer returns a syncer for the configured remote catalogue, or nil
// when SYNC_BASE_URL is empty.
func NewSyncer(cfg config.Config, store *service.Store, log *slog.Logger) *remote.Syncer {
	if cfg.SyncBaseURL == "" {
		return nil
	}
	src := remote.NewHTTPSource(cfg.SyncBaseURL, cfg.SyncTimeout,
		remote.WithPaths(cfg.SyncDestinationsPath, cfg.SyncTripsPath))
	return remote.NewSyncer(src, store, log)
}
