package store

import (
	"github.com/jackc/pgx/v5"

	"github.com/simgraphai/simgraph/internal/models"
)

// nodeColumns lists the columns selected for node queries (excluding embedding).
const nodeColumns = `id, path, label, description`

// scanNode scans a single row into a models.Node.
func scanNode(scan func(dest ...any) error) (*models.Node, error) {
	var n models.Node
	var description *string

	err := scan(&n.ID, &n.Path, &n.Label, &description)
	if err != nil {
		return nil, err
	}

	if description != nil {
		n.Description = *description
	}

	return &n, nil
}

// collectNodes drains rows into a node slice.
func collectNodes(rows pgx.Rows) ([]models.Node, error) {
	nodes := make([]models.Node, 0, 16)

	for rows.Next() {
		n, err := scanNode(rows.Scan)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, *n)
	}

	return nodes, rows.Err()
}
