package api

import (
	"context"

	"github.com/simgraphai/simgraph/internal/models"
)

// TraversalProvider defines the graph queries used by GraphHandler.
type TraversalProvider interface {
	Neighbors(ctx context.Context, imagePath string, threshold float64, limit int) (*models.GraphResult, error)
	Traverse(ctx context.Context, imagePath string, threshold float64, depth, limitPerLevel, maxNodes int) (*models.GraphResult, error)
}

// AdminProvider defines the maintenance operations used by AdminHandler
// and StatsHandler.
type AdminProvider interface {
	Stats(ctx context.Context) (*models.StatsResult, error)
	Sync(ctx context.Context) (*models.SyncResult, error)
	Fix(ctx context.Context) (*models.FixResult, error)
	Reset(ctx context.Context) (*models.ResetResult, error)
}

// SearchProvider defines the search operations used by SearchHandler.
type SearchProvider interface {
	ByDescription(ctx context.Context, query string, limit int) ([]models.Node, error)
}

// ImageProvider defines the image directory operations used by ImageHandler.
type ImageProvider interface {
	Dir() string
	Resolve(name string) (string, bool)
	List() []string
	Invalidate()
}
