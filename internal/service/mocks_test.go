package service

import (
	"context"
	"sort"
	"sync"

	"github.com/simgraphai/simgraph/internal/models"
)

// mockNodeReader returns configured responses for node lookups.
type mockNodeReader struct {
	mu    sync.Mutex
	calls []string

	getByPath func(ctx context.Context, path string) (*models.Node, error)
	getByID   func(ctx context.Context, id string) (*models.Node, error)
}

func (m *mockNodeReader) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockNodeReader) GetByPath(ctx context.Context, path string) (*models.Node, error) {
	m.record("GetByPath")
	return m.getByPath(ctx, path)
}

func (m *mockNodeReader) GetByID(ctx context.Context, id string) (*models.Node, error) {
	m.record("GetByID")
	return m.getByID(ctx, id)
}

// mockImages reports every image as present except the configured names.
type mockImages struct {
	missing map[string]bool
}

func (m *mockImages) Exists(name string) bool {
	return !m.missing[name]
}

// graphFixture is an in-memory undirected weighted graph backing the
// NeighborReader interface with the same ranking the store produces.
type graphFixture struct {
	nodes map[string]models.Node
	// weights maps source -> target -> weight, populated in both directions.
	weights map[string]map[string]float64
}

func newGraphFixture() *graphFixture {
	return &graphFixture{
		nodes:   make(map[string]models.Node),
		weights: make(map[string]map[string]float64),
	}
}

func (g *graphFixture) addNode(id, path string) {
	g.nodes[id] = models.Node{ID: id, Path: path, Label: models.LabelFromPath(path)}
}

func (g *graphFixture) addEdge(a, b string, weight float64) {
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		if g.weights[pair[0]] == nil {
			g.weights[pair[0]] = make(map[string]float64)
		}
		g.weights[pair[0]][pair[1]] = weight
	}
}

func (g *graphFixture) RankedNeighbors(_ context.Context, nodeID string, threshold float64, limit int) ([]models.Neighbor, error) {
	out := make([]models.Neighbor, 0)

	for target, weight := range g.weights[nodeID] {
		if weight < threshold {
			continue
		}
		out = append(out, models.Neighbor{Node: g.nodes[target], Weight: weight})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// nodeReaderFor builds a mockNodeReader resolving paths against the fixture.
func (g *graphFixture) nodeReader() *mockNodeReader {
	return &mockNodeReader{
		getByPath: func(_ context.Context, path string) (*models.Node, error) {
			for _, n := range g.nodes {
				if n.Path == path {
					node := n
					return &node, nil
				}
			}
			return nil, models.ErrNodeNotFound
		},
		getByID: func(_ context.Context, id string) (*models.Node, error) {
			n, ok := g.nodes[id]
			if !ok {
				return nil, models.ErrNodeNotFound
			}
			node := n
			return &node, nil
		},
	}
}
