package test

import (
	"context"
	"testing"

	"github.com/tripnavi/tripnavi/internal/profile"
	"github.com/tripnavi/tripnavi/store"
	"github.com/tripnavi/tripnavi/store/db"
)

// NewTestingStore opens a fresh sqlite-backed store under the test's temp
// directory and runs the schema migration.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	testProfile := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   t.TempDir(),
	}
	if err := testProfile.Validate(); err != nil {
		t.Fatalf("failed to validate test profile: %v", err)
	}

	dbDriver, err := db.NewDBDriver(testProfile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	testStore := store.New(dbDriver, testProfile)
	if err := testStore.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := testStore.Close(); err != nil {
			t.Logf("failed to close test store: %v", err)
		}
	})
	return testStore
}

func createTestingTrip(ctx context.Context, t *testing.T, ts *store.Store, uid string) *store.Trip {
	trip, err := ts.CreateTrip(ctx, &store.Trip{
		UID:         uid,
		Title:       "Kyushu in autumn",
		Destination: "Fukuoka, Japan",
		Currency:    "JPY",
		Latitude:    33.5902,
		Longitude:   130.4017,
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-07",
		Notes:       "Ramen first, temples second.",
	})
	if err != nil {
		t.Fatalf("failed to create testing trip: %v", err)
	}
	return trip
}
