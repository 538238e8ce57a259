// Package store provides focused, single-concern data access stores for
// the simgraph similarity graph.
//
// Each store owns one domain (nodes, edges) and embeds shared helpers
// (Pool, logger) via the Base struct. Stores never import each other:
// shared logic lives in this file or in scan.go.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// NotifyChannel is the pg_notify channel used to announce graph changes.
const NotifyChannel = "graph_changes"

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// notify sends a pg_notify on the graph_changes channel (best-effort, post-commit).
func (b *Base) notify(op string, count int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, _ := json.Marshal(map[string]any{ //nolint:errcheck // static keys, cannot fail.
		"op":    op,
		"count": count,
	})
	if _, err := b.Pool.Exec(ctx, "SELECT pg_notify($1, $2)", NotifyChannel, string(payload)); err != nil {
		b.Log.WithError(err).Warn("failed to send " + op + " notification")
	}
}
