package store

import (
	"context"
	"fmt"

	"github.com/simgraphai/simgraph/internal/models"
)

// maxNeighborFetch caps the neighbors returned from a single ranked query.
const maxNeighborFetch = 500

// EdgePair is the stored form of a similarity edge. Pairs are stored once
// with source < target; neighbor queries read both directions.
type EdgePair struct {
	Source string
	Target string
	Weight float64
}

// EdgeStore handles similarity edge queries and lifecycle.
type EdgeStore struct {
	Base
}

// NewEdgeStore creates an EdgeStore with the given shared base.
func NewEdgeStore(base Base) *EdgeStore {
	return &EdgeStore{Base: base}
}

// RankedNeighbors returns the neighbors of nodeID whose similarity weight
// is at least threshold, ordered by weight descending then id ascending,
// capped at limit. This is the single query the traversal layer builds on.
func (s *EdgeStore) RankedNeighbors(ctx context.Context, nodeID string, threshold float64, limit int) ([]models.Neighbor, error) {
	if limit <= 0 || limit > maxNeighborFetch {
		limit = maxNeighborFetch
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// Pairs are stored undirected with a single row; UNION ALL over both
	// directions gives every neighbor exactly once.
	rows, err := s.Pool.Query(ctx,
		`SELECT n.id, n.path, n.label, n.description, e.weight
		FROM (
			SELECT target AS nid, weight FROM image_edges WHERE source = $1 AND weight >= $2
			UNION ALL
			SELECT source AS nid, weight FROM image_edges WHERE target = $1 AND weight >= $2
		) e
		JOIN image_nodes n ON n.id = e.nid
		ORDER BY e.weight DESC, n.id ASC
		LIMIT $3`, nodeID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ranked neighbors: %w", err)
	}
	defer rows.Close()

	neighbors := make([]models.Neighbor, 0, 16)

	for rows.Next() {
		var nb models.Neighbor
		var description *string

		if err := rows.Scan(&nb.ID, &nb.Path, &nb.Label, &description, &nb.Weight); err != nil {
			return nil, fmt.Errorf("scanning ranked neighbor: %w", err)
		}

		if description != nil {
			nb.Description = *description
		}

		neighbors = append(neighbors, nb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ranked neighbors: %w", err)
	}

	return neighbors, nil
}

// Count returns the number of stored similarity edges.
func (s *EdgeStore) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM image_edges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting edges: %w", err)
	}

	return count, nil
}

// Replace atomically swaps the full edge set for the given pairs.
// Used by ingest after recomputing similarities.
func (s *EdgeStore) Replace(ctx context.Context, pairs []EdgePair) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning edge replace: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if _, err := tx.Exec(ctx, `DELETE FROM image_edges`); err != nil {
		return 0, fmt.Errorf("clearing edges: %w", err)
	}

	count := 0

	for _, p := range pairs {
		src, dst := p.Source, p.Target
		if src > dst {
			src, dst = dst, src
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO image_edges (source, target, weight) VALUES ($1, $2, $3)
			ON CONFLICT (source, target) DO UPDATE SET weight = EXCLUDED.weight`,
			src, dst, p.Weight)
		if err != nil {
			return 0, fmt.Errorf("inserting edge %s-%s: %w", src, dst, err)
		}

		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing edge replace: %w", err)
	}

	s.notify("edges_replaced", count)

	return count, nil
}
