// Package config loads and validates application configuration from
// environment variables, optionally pre-seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in images without a zoneinfo database

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server and travelctl.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. When empty the store
	// runs on the in-memory backend and nothing survives a restart.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Location is the time zone activity times and expense dates are
	// evaluated in. TIMEZONE takes an IANA name; defaults to UTC.
	Location *time.Location

	// EnforceActivityRange rejects activities dated outside their trip.
	// Defaults to true.
	EnforceActivityRange bool

	// SyncBaseURL is the root of the remote destination/trip catalogue.
	// Empty disables remote sync.
	SyncBaseURL string

	// SyncDestinationsPath and SyncTripsPath are appended to SyncBaseURL.
	// Default "/destination" and "/trips"; catalogues that pluralise the
	// destinations collection set SYNC_DESTINATIONS_PATH=/destinations.
	SyncDestinationsPath string
	SyncTripsPath        string

	// SyncOnStart runs one sync before the server starts accepting traffic.
	SyncOnStart bool

	// SyncTimeout bounds each request to the remote catalogue. Defaults to 10s.
	SyncTimeout time.Duration

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// InMemory reports whether no database is configured.
func (c Config) InMemory() bool {
	return c.DatabaseURL == ""
}

// SlogLevel returns LogLevel as a slog.Level. Load has already validated it.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load reads ".env" if present and then the environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads envFile if it exists, without overriding variables that are
// already set, then builds a Config from the environment.
// Returns a single error listing every variable with an invalid value.
func LoadFrom(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SyncBaseURL: os.Getenv("SYNC_BASE_URL"),

		SyncDestinationsPath: getEnv("SYNC_DESTINATIONS_PATH", "/destination"),
		SyncTripsPath:        getEnv("SYNC_TRIPS_PATH", "/trips"),
	}

	var invalid []string
	fail := func(key string, err error) {
		invalid = append(invalid, fmt.Sprintf("%s (%v)", key, err))
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		fail("PORT", err)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fail("LOG_LEVEL", err)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		fail("TIMEZONE", err)
	}
	cfg.Location = loc

	if cfg.EnforceActivityRange, err = strconv.ParseBool(getEnv("ENFORCE_ACTIVITY_RANGE", "true")); err != nil {
		fail("ENFORCE_ACTIVITY_RANGE", err)
	}
	if cfg.SyncOnStart, err = strconv.ParseBool(getEnv("SYNC_ON_START", "false")); err != nil {
		fail("SYNC_ON_START", err)
	}
	if cfg.SyncTimeout, err = time.ParseDuration(getEnv("SYNC_TIMEOUT", "10s")); err != nil {
		fail("SYNC_TIMEOUT", err)
	} else if cfg.SyncTimeout <= 0 {
		fail("SYNC_TIMEOUT", errors.New("must be positive"))
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil {
		fail("MAX_BODY_BYTES", err)
	} else if cfg.MaxBodyBytes <= 0 {
		fail("MAX_BODY_BYTES", errors.New("must be positive"))
	}
	if !strings.HasPrefix(cfg.SyncDestinationsPath, "/") {
		fail("SYNC_DESTINATIONS_PATH", errors.New("must start with /"))
	}
	if !strings.HasPrefix(cfg.SyncTripsPath, "/") {
		fail("SYNC_TRIPS_PATH", errors.New("must start with /"))
	}
	if cfg.SyncOnStart && cfg.SyncBaseURL == "" {
		fail("SYNC_ON_START", errors.New("requires SYNC_BASE_URL"))
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
