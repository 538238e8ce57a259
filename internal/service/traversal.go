// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/metrics"
	"github.com/simgraphai/simgraph/internal/models"
)

// Traversal limits.
const (
	// MaxDepth bounds multi-level traversal cost.
	MaxDepth = 5

	// maxNeighborLimit caps the per-query neighbor fanout.
	maxNeighborLimit = 500

	// maxTotalNodes caps the max_nodes budget a single request may ask for.
	maxTotalNodes = 1000
)

// NodeReader resolves image nodes.
type NodeReader interface {
	GetByPath(ctx context.Context, path string) (*models.Node, error)
	GetByID(ctx context.Context, id string) (*models.Node, error)
}

// NeighborReader queries ranked similarity neighbors.
// Results are sorted by weight descending, then id ascending.
type NeighborReader interface {
	RankedNeighbors(ctx context.Context, nodeID string, threshold float64, limit int) ([]models.Neighbor, error)
}

// ImageChecker reports whether an image file is present on disk.
type ImageChecker interface {
	Exists(name string) bool
}

// TraversalService builds leveled subgraphs around a center image.
type TraversalService struct {
	nodes  NodeReader
	edges  NeighborReader
	images ImageChecker
	log    *logrus.Logger
}

// NewTraversalService creates a TraversalService.
func NewTraversalService(nodes NodeReader, edges NeighborReader, images ImageChecker, log *logrus.Logger) *TraversalService {
	return &TraversalService{nodes: nodes, edges: edges, images: images, log: log}
}

// ResolveCenter finds the node for an image path, tolerating the path forms
// clients send: the raw value, the bare filename, and an "images/" prefixed
// variant are each tried in turn.
func (s *TraversalService) ResolveCenter(ctx context.Context, imagePath string) (*models.Node, error) {
	if imagePath == "" {
		return nil, models.ErrMissingImagePath
	}

	bare := models.NormalizePath(imagePath)
	candidates := []string{imagePath}
	if bare != imagePath {
		candidates = append(candidates, bare)
	}
	if prefixed := "images/" + bare; prefixed != imagePath {
		candidates = append(candidates, prefixed)
	}

	for _, p := range candidates {
		n, err := s.nodes.GetByPath(ctx, p)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, models.ErrNodeNotFound) {
			return nil, err
		}
	}

	return nil, models.ErrNodeNotFound
}

// Neighbors returns the center node plus its direct neighbors above
// threshold, ranked by weight. Neighbors whose image file is missing from
// disk are dropped so the viewer never renders broken tiles.
func (s *TraversalService) Neighbors(ctx context.Context, imagePath string, threshold float64, limit int) (*models.GraphResult, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	if limit < 1 {
		return nil, models.ErrInvalidLimit
	}

	if limit > maxNeighborLimit {
		limit = maxNeighborLimit
	}

	center, err := s.ResolveCenter(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"center":    center.ID,
		"threshold": threshold,
		"limit":     limit,
	}).Debug("graph.neighbors")

	neighbors, err := s.edges.RankedNeighbors(ctx, center.ID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("querying neighbors: %w", err)
	}

	result := &models.GraphResult{
		Nodes: make([]models.Node, 0, len(neighbors)+1),
		Edges: make([]models.Edge, 0, len(neighbors)),
	}

	c := *center
	c.IsCenter = true
	result.Nodes = append(result.Nodes, c)

	for _, nb := range neighbors {
		if !s.images.Exists(models.NormalizePath(nb.Path)) {
			continue
		}

		result.Nodes = append(result.Nodes, nb.Node)
		result.Edges = append(result.Edges, models.NewEdge(center.ID, nb.ID, nb.Weight))
	}

	return result, nil
}

// Traverse performs a bounded multi-level BFS from the center image.
//
// Parents at each level are processed in ascending id order and their
// neighbors arrive ranked by weight. A node joins the graph at the first
// level it is reached; later sightings only contribute an edge, and at most
// once per node pair. Up to limitPerLevel new children are accepted per
// parent. The walk stops, mid-level if necessary, once maxNodes nodes have
// accumulated.
func (s *TraversalService) Traverse(ctx context.Context, imagePath string, threshold float64, depth, limitPerLevel, maxNodes int) (*models.GraphResult, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	if depth < 1 || depth > MaxDepth {
		return nil, models.ErrInvalidDepth
	}

	if limitPerLevel < 1 {
		return nil, models.ErrInvalidLimit
	}

	if limitPerLevel > maxNeighborLimit {
		limitPerLevel = maxNeighborLimit
	}

	if maxNodes < 1 {
		return nil, models.ErrInvalidMaxNodes
	}

	if maxNodes > maxTotalNodes {
		maxNodes = maxTotalNodes
	}

	center, err := s.ResolveCenter(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	s.log.WithFields(logrus.Fields{
		"center":          center.ID,
		"threshold":       threshold,
		"depth":           depth,
		"limit_per_level": limitPerLevel,
		"max_nodes":       maxNodes,
	}).Debug("graph.traverse")

	result := &models.GraphResult{
		Nodes: make([]models.Node, 0, maxNodes),
		Edges: make([]models.Edge, 0, maxNodes),
	}

	c := *center
	c.IsCenter = true
	c.Level = models.IntPtr(0)
	result.Nodes = append(result.Nodes, c)

	visited := map[string]bool{center.ID: true}
	edgeSeen := map[string]bool{}
	frontier := []string{center.ID}

	for level := 1; level <= depth && len(frontier) > 0 && len(result.Nodes) < maxNodes; level++ {
		// Stable parent order keeps results deterministic.
		sort.Strings(frontier)

		next := make([]string, 0, len(frontier)*limitPerLevel)

		for _, parentID := range frontier {
			if len(result.Nodes) >= maxNodes {
				break
			}

			// Visited candidates are skipped without consuming a fanout
			// slot, so fetch enough extras to cover them.
			fetch := limitPerLevel + len(visited)
			if fetch > maxNeighborLimit {
				fetch = maxNeighborLimit
			}

			neighbors, err := s.edges.RankedNeighbors(ctx, parentID, threshold, fetch)
			if err != nil {
				return nil, fmt.Errorf("querying neighbors of %s: %w", parentID, err)
			}

			accepted := 0

			for _, nb := range neighbors {
				if accepted >= limitPerLevel {
					break
				}

				if visited[nb.ID] {
					// Already in the graph; record the cross edge once.
					s.addEdge(result, edgeSeen, parentID, nb.ID, nb.Weight)
					continue
				}

				if !s.images.Exists(models.NormalizePath(nb.Path)) {
					continue
				}

				node := nb.Node
				node.Level = models.IntPtr(level)
				result.Nodes = append(result.Nodes, node)
				visited[nb.ID] = true
				next = append(next, nb.ID)
				s.addEdge(result, edgeSeen, parentID, nb.ID, nb.Weight)
				accepted++

				if len(result.Nodes) >= maxNodes {
					break
				}
			}
		}

		frontier = next
	}

	metrics.TraversalDuration.WithLabelValues(strconv.Itoa(depth)).Observe(time.Since(start).Seconds())
	metrics.TraversalNodes.Observe(float64(len(result.Nodes)))

	return result, nil
}

// addEdge appends source→target unless an edge between the pair exists in
// either direction.
func (s *TraversalService) addEdge(result *models.GraphResult, seen map[string]bool, source, target string, weight float64) {
	if seen[models.EdgeID(source, target)] || seen[models.EdgeID(target, source)] {
		return
	}

	e := models.NewEdge(source, target, weight)
	seen[e.ID] = true
	result.Edges = append(result.Edges, e)
}

func validateThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 {
		return models.ErrInvalidThreshold
	}

	return nil
}
