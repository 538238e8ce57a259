package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/dbpool"
	"github.com/simgraphai/simgraph/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestBase creates a Base over empty tables, cleaned up after the test.
// Tests share one database, so they must not run in parallel.
func setupTestBase(t *testing.T) store.Base {
	t.Helper()

	env := getTestEnv(t)

	clean := func() {
		ctx := context.Background()
		// Edges cascade from nodes, but delete both for clarity.
		env.pool.Exec(ctx, "DELETE FROM image_edges") //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM image_nodes") //nolint:errcheck // best-effort cleanup
	}

	clean()
	t.Cleanup(clean)

	return store.Base{Pool: env.pool, Log: env.log}
}
