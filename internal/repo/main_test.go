package repo_test

import (
	"os"
	"testing"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/testutil"
)

// TestMain applies all pending migrations to the test database before any
// test in the package runs. Without TEST_DATABASE_URL only the in-memory
// tests run; the Postgres tests skip themselves.
func TestMain(m *testing.M) {
	if dsn := os.Getenv(testutil.DSNEnv); dsn != "" {
		testutil.MustMigrate(dsn)
	}
	os.Exit(m.Run())
}

// newPgRepos opens a transaction against the test database and returns
// Postgres repos bound to it. The transaction is rolled back when the test
// finishes, giving free per-test isolation.
func newPgRepos(t *testing.T) repo.Repos {
	t.Helper()
	return repo.NewPgRepos(testutil.NewTx(t))
}

// ---- fixtures ----------------------------------------------------------------

// Ids are high so they never collide with rows a developer left in the test DB.
const (
	destID     int64 = 900001
	tripID     int64 = 900101
	activityID int64 = 900201
	expenseID  int64 = 900301
)

func destinationFixture() domain.Destination {
	img := "https://img.example.com/rome.jpg"
	return domain.Destination{ID: destID, City: "Rome", Country: "Italy", ImageRef: &img}
}

func tripFixture() domain.Trip {
	desc := "Spring in Rome"
	return domain.Trip{
		ID:            tripID,
		DestinationID: destID,
		Title:         "Roman Holiday",
		StartDate:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Description:   &desc,
	}
}

func activityFixture() domain.Activity {
	return domain.Activity{
		ID:       activityID,
		TripID:   tripID,
		Name:     "Colosseum tour",
		Date:     time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		Time:     "09:30",
		Location: "Piazza del Colosseo",
	}
}
