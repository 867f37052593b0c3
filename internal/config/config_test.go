package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "LOG_LEVEL", "CORS_ORIGINS", "TIMEZONE",
		"ENFORCE_ACTIVITY_RANGE", "SYNC_BASE_URL", "SYNC_ON_START",
		"SYNC_TIMEOUT", "MAX_BODY_BYTES", "SYNC_DESTINATIONS_PATH", "SYNC_TRIPS_PATH",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_defaults verifies that every variable falls back to its default
// and that an unset DATABASE_URL selects the in-memory store.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadFrom("")

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	require.True(t, cfg.InMemory())
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, time.UTC, cfg.Location)
	require.True(t, cfg.EnforceActivityRange)
	require.False(t, cfg.SyncOnStart)
	require.Equal(t, 10*time.Second, cfg.SyncTimeout)
	require.Equal(t, "/destination", cfg.SyncDestinationsPath)
	require.Equal(t, "/trips", cfg.SyncTripsPath)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/travel")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("TIMEZONE", "Europe/Rome")
	t.Setenv("ENFORCE_ACTIVITY_RANGE", "false")
	t.Setenv("SYNC_BASE_URL", "https://catalogue.example.com/api")
	t.Setenv("SYNC_ON_START", "true")
	t.Setenv("SYNC_TIMEOUT", "3s")
	t.Setenv("MAX_BODY_BYTES", "4096")
	t.Setenv("SYNC_DESTINATIONS_PATH", "/destinations")
	t.Setenv("SYNC_TRIPS_PATH", "/v2/trips")

	cfg, err := config.LoadFrom("")

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	require.False(t, cfg.InMemory())
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "Europe/Rome", cfg.Location.String())
	require.False(t, cfg.EnforceActivityRange)
	require.Equal(t, "https://catalogue.example.com/api", cfg.SyncBaseURL)
	require.True(t, cfg.SyncOnStart)
	require.Equal(t, 3*time.Second, cfg.SyncTimeout)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
	require.Equal(t, "/destinations", cfg.SyncDestinationsPath)
	require.Equal(t, "/v2/trips", cfg.SyncTripsPath)
}

func TestLoad_syncPathsMustBeAbsolute(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNC_DESTINATIONS_PATH", "destinations")

	_, err := config.LoadFrom("")

	require.ErrorContains(t, err, "SYNC_DESTINATIONS_PATH")
}

// TestLoad_invalidValuesReportedTogether verifies that every bad variable is
// named in one error.
func TestLoad_invalidValuesReportedTogether(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEZONE", "Mars/Olympus")
	t.Setenv("ENFORCE_ACTIVITY_RANGE", "sometimes")
	t.Setenv("SYNC_TIMEOUT", "-1s")
	t.Setenv("MAX_BODY_BYTES", "big")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := config.LoadFrom("")

	require.Error(t, err)
	for _, key := range []string{"TIMEZONE", "ENFORCE_ACTIVITY_RANGE", "SYNC_TIMEOUT", "MAX_BODY_BYTES", "LOG_LEVEL"} {
		require.ErrorContains(t, err, key)
	}
}

// TestLoad_syncOnStartNeedsBaseURL verifies the cross-field check.
func TestLoad_syncOnStartNeedsBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNC_ON_START", "true")

	_, err := config.LoadFrom("")

	require.ErrorContains(t, err, "SYNC_BASE_URL")
}

// TestLoadFrom_dotEnv verifies that a .env file fills unset variables and
// that a missing file is not an error.
func TestLoadFrom_dotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv only fills variables that are absent, not ones set to "".
	require.NoError(t, os.Unsetenv("PORT"))
	require.NoError(t, os.Unsetenv("TIMEZONE"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nTIMEZONE=Asia/Tokyo\n"), 0o600))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Port)
	require.Equal(t, "Asia/Tokyo", cfg.Location.String())

	_, err = config.LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
