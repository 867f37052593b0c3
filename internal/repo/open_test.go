package repo_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/testutil"
)

func TestOpenPostgres_BadDSN(t *testing.T) {
	_, err := repo.OpenPostgres(context.Background(), "not a dsn ::")
	assert.Error(t, err)
}

func TestOpenPostgres_MigrateIsIdempotent(t *testing.T) {
	dsn := os.Getenv(testutil.DSNEnv)
	if dsn == "" {
		t.Skip(testutil.DSNEnv + " not set; skipping integration test")
	}
	ctx := context.Background()

	pool, err := repo.OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	// TestMain already migrated the database.
	n, err := repo.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Zero(t, n)

	// The pool must survive the database/sql view being closed.
	require.NoError(t, pool.Ping(ctx))
}
