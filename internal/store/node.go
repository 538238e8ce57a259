package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/simgraphai/simgraph/internal/models"
)

// maxListLimit is a defense-in-depth cap on limit values for list queries.
const maxListLimit = 1000

// NodeStore handles image node lookups and lifecycle.
type NodeStore struct {
	Base
}

// NewNodeStore creates a NodeStore with the given shared base.
func NewNodeStore(base Base) *NodeStore {
	return &NodeStore{Base: base}
}

// GetByPath returns the node stored under the exact image path.
func (s *NodeStore) GetByPath(ctx context.Context, path string) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+nodeColumns+` FROM image_nodes WHERE path = $1`, path)

	n, err := scanNode(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("scanning node by path: %w", err)
	}

	return n, nil
}

// GetByID returns the node with the given id.
func (s *NodeStore) GetByID(ctx context.Context, id string) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+nodeColumns+` FROM image_nodes WHERE id = $1`, id)

	n, err := scanNode(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("scanning node by id: %w", err)
	}

	return n, nil
}

// ListPaths returns every stored image path, ascending.
func (s *NodeStore) ListPaths(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT path FROM image_nodes ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing node paths: %w", err)
	}
	defer rows.Close()

	paths := make([]string, 0, 64)

	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning node path: %w", err)
		}

		paths = append(paths, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node paths: %w", err)
	}

	return paths, nil
}

// SearchByDescription returns nodes whose description contains the query,
// case-insensitively, capped at limit.
func (s *NodeStore) SearchByDescription(ctx context.Context, query string, limit int) ([]models.Node, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT `+nodeColumns+` FROM image_nodes
		WHERE description IS NOT NULL AND description ILIKE '%' || $1 || '%'
		ORDER BY path LIMIT $2`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching descriptions: %w", err)
	}
	defer rows.Close()

	nodes, err := collectNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("collecting search results: %w", err)
	}

	return nodes, nil
}

// Count returns the number of stored image nodes.
func (s *NodeStore) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM image_nodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting nodes: %w", err)
	}

	return count, nil
}

// UpsertRecords inserts or replaces node records, including embeddings.
// Used by ingest when loading a precomputed embedding set.
func (s *NodeStore) UpsertRecords(ctx context.Context, records []models.NodeRecord) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning upsert: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	count := 0

	for _, r := range records {
		var description *string
		if r.Description != "" {
			description = &r.Description
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO image_nodes (id, path, label, description, embedding)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (path) DO UPDATE
			SET label = EXCLUDED.label, description = EXCLUDED.description,
				embedding = EXCLUDED.embedding, updated_at = now()`,
			r.ID, r.Path, r.Label, description, r.Embedding)
		if err != nil {
			return 0, fmt.Errorf("upserting node %s: %w", r.Path, err)
		}

		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}

	s.notify("nodes_upserted", count)

	return count, nil
}

// AllRecords returns every node with its embedding, ascending by id.
func (s *NodeStore) AllRecords(ctx context.Context) ([]models.NodeRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT id, path, label, description, embedding FROM image_nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying node records: %w", err)
	}
	defer rows.Close()

	records := make([]models.NodeRecord, 0, 64)

	for rows.Next() {
		var r models.NodeRecord
		var description *string

		if err := rows.Scan(&r.ID, &r.Path, &r.Label, &description, &r.Embedding); err != nil {
			return nil, fmt.Errorf("scanning node record: %w", err)
		}

		if description != nil {
			r.Description = *description
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node records: %w", err)
	}

	return records, nil
}

// RemoveByPaths deletes the nodes with the given paths and, via the edge
// foreign keys, every edge touching them. Returns the number removed.
func (s *NodeStore) RemoveByPaths(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, `DELETE FROM image_nodes WHERE path = ANY($1)`, paths)
	if err != nil {
		return 0, fmt.Errorf("removing nodes: %w", err)
	}

	removed := int(tag.RowsAffected())
	if removed > 0 {
		s.notify("nodes_removed", removed)
	}

	return removed, nil
}

// Clear deletes all nodes and, via cascading foreign keys, all edges.
func (s *NodeStore) Clear(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := s.Pool.Exec(ctx, `DELETE FROM image_nodes`); err != nil {
		return fmt.Errorf("clearing nodes: %w", err)
	}

	s.notify("cleared", 0)

	return nil
}
