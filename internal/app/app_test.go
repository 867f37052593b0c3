package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/app"
	"github.com/pkordes/travel-planner/backend/internal/config"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/remote"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore_InMemory(t *testing.T) {
	cfg := config.Config{Location: time.UTC, EnforceActivityRange: true}

	store, closeFn, err := app.OpenStore(context.Background(), cfg, discard())
	require.NoError(t, err)
	defer closeFn()

	_, err = store.AddDestination(context.Background(), domain.Destination{ID: 1, City: "Rome", Country: "Italy"})
	require.NoError(t, err)

	got, err := store.ListDestinations(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenStore_BadDatabaseURL(t *testing.T) {
	cfg := config.Config{Location: time.UTC, DatabaseURL: "not a dsn ::"}

	_, _, err := app.OpenStore(context.Background(), cfg, discard())
	assert.Error(t, err)
}

func TestNewSyncer(t *testing.T) {
	cfg := config.Config{Location: time.UTC}
	store, closeFn, err := app.OpenStore(context.Background(), cfg, discard())
	require.NoError(t, err)
	defer closeFn()

	assert.Nil(t, app.NewSyncer(cfg, store, discard()), "no base URL disables sync")

	cfg.SyncBaseURL = "http://127.0.0.1:1"
	cfg.SyncTimeout = time.Second
	s := app.NewSyncer(cfg, store, discard())
	require.NotNil(t, s)
	assert.Equal(t, remote.NotStarted, s.Status().State)
}
