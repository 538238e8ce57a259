// Package explore implements the client-side incremental graph loader:
// a merged in-memory graph, an expansion scheduler with single-flight
// fetching, viewport-driven candidate selection, and click disambiguation.
package explore

import (
	"github.com/simgraphai/simgraph/internal/models"
)

// Graph is the running merged view of everything fetched so far. Nodes and
// edges keep insertion order so the renderer can draw them stably; lookups
// go through the id indexes.
//
// Graph is not safe for concurrent use on its own; Session serializes
// access to it.
type Graph struct {
	nodes     []models.Node
	edges     []models.Edge
	nodeIndex map[string]int
	edgeIndex map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[string]struct{}),
	}
}

// AddNode inserts n unless a node with the same id already exists.
// It reports whether the node was added.
func (g *Graph) AddNode(n models.Node) bool {
	if _, ok := g.nodeIndex[n.ID]; ok {
		return false
	}

	g.nodeIndex[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)

	return true
}

// AddEdge inserts e unless an edge already connects the pair in either
// direction. It reports whether the edge was added.
func (g *Graph) AddEdge(e models.Edge) bool {
	if g.HasEdgeBetween(e.Source, e.Target) {
		return false
	}

	g.edgeIndex[e.ID] = struct{}{}
	g.edges = append(g.edges, e)

	return true
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (models.Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return models.Node{}, false
	}

	return g.nodes[i], true
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]

	return ok
}

// HasEdgeBetween reports whether the pair is already connected,
// checking both orientations.
func (g *Graph) HasEdgeBetween(source, target string) bool {
	if _, ok := g.edgeIndex[models.EdgeID(source, target)]; ok {
		return true
	}

	_, ok := g.edgeIndex[models.EdgeID(target, source)]

	return ok
}

// NodeCount returns the number of nodes held.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges held.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the nodes in insertion order. The slice is a copy.
func (g *Graph) Nodes() []models.Node {
	out := make([]models.Node, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// Edges returns the edges in insertion order. The slice is a copy.
func (g *Graph) Edges() []models.Edge {
	out := make([]models.Edge, len(g.edges))
	copy(out, g.edges)

	return out
}
