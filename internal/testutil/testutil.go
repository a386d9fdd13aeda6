// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"hackhub/internal/badger"
	"hackhub/internal/db"
	"hackhub/migrations"
)

// BadgerStore opens a Badger store in a temporary directory, closed when the
// test ends.
func BadgerStore(t *testing.T) *badger.Store {
	t.Helper()

	st, err := badger.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open badger store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestDB connects to TEST_DATABASE_URL, runs every migration set and empties
// the tables before and after the test. The test is skipped when the
// variable is not set.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	for _, set := range []migrations.Set{migrations.Documents, migrations.Catalog} {
		if err := database.RunMigrations(connString, set); err != nil {
			database.Close()
			t.Fatalf("failed to run %s migrations: %v", set, err)
		}
	}

	cleanupTestData(ctx, database)
	t.Cleanup(func() {
		cleanupTestData(ctx, database)
		database.Close()
	})
	return database
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, database *db.DB) {
	database.Pool.Exec(ctx, "DELETE FROM job_search_results")
	database.Pool.Exec(ctx, "DELETE FROM language_detections")
	database.Pool.Exec(ctx, "TRUNCATE productos RESTART IDENTITY")
}
