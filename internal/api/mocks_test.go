package api_test

import (
	"context"

	"github.com/simgraphai/simgraph/internal/models"
)

// mockTraversal returns configured responses for graph queries.
type mockTraversal struct {
	neighbors func(ctx context.Context, imagePath string, threshold float64, limit int) (*models.GraphResult, error)
	traverse  func(ctx context.Context, imagePath string, threshold float64, depth, limitPerLevel, maxNodes int) (*models.GraphResult, error)
}

func (m *mockTraversal) Neighbors(ctx context.Context, imagePath string, threshold float64, limit int) (*models.GraphResult, error) {
	return m.neighbors(ctx, imagePath, threshold, limit)
}

func (m *mockTraversal) Traverse(ctx context.Context, imagePath string, threshold float64, depth, limitPerLevel, maxNodes int) (*models.GraphResult, error) {
	return m.traverse(ctx, imagePath, threshold, depth, limitPerLevel, maxNodes)
}

// mockAdmin returns configured responses for maintenance operations.
type mockAdmin struct {
	stats func(ctx context.Context) (*models.StatsResult, error)
	sync  func(ctx context.Context) (*models.SyncResult, error)
	fix   func(ctx context.Context) (*models.FixResult, error)
	reset func(ctx context.Context) (*models.ResetResult, error)
}

func (m *mockAdmin) Stats(ctx context.Context) (*models.StatsResult, error) { return m.stats(ctx) }
func (m *mockAdmin) Sync(ctx context.Context) (*models.SyncResult, error)   { return m.sync(ctx) }
func (m *mockAdmin) Fix(ctx context.Context) (*models.FixResult, error)     { return m.fix(ctx) }
func (m *mockAdmin) Reset(ctx context.Context) (*models.ResetResult, error) { return m.reset(ctx) }

// mockSearch returns configured search responses.
type mockSearch struct {
	byDescription func(ctx context.Context, query string, limit int) ([]models.Node, error)
}

func (m *mockSearch) ByDescription(ctx context.Context, query string, limit int) ([]models.Node, error) {
	return m.byDescription(ctx, query, limit)
}

// mockImages is a static image directory.
type mockImages struct {
	dir   string
	files map[string]string // lowercased name -> actual name
}

func (m *mockImages) Dir() string { return m.dir }

func (m *mockImages) Resolve(name string) (string, bool) {
	actual, ok := m.files[name]
	return actual, ok
}

func (m *mockImages) List() []string {
	out := make([]string, 0, len(m.files))
	for _, actual := range m.files {
		out = append(out, actual)
	}
	return out
}

func (m *mockImages) Invalidate() {}
