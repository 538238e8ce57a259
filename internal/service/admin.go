package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/metrics"
	"github.com/simgraphai/simgraph/internal/models"
)

// AdminNodeStore defines the node data access AdminService depends on.
type AdminNodeStore interface {
	ListPaths(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	RemoveByPaths(ctx context.Context, paths []string) (int, error)
}

// EdgeCounter reports the stored edge count.
type EdgeCounter interface {
	Count(ctx context.Context) (int64, error)
}

// ImageLister enumerates and refreshes the image directory snapshot.
type ImageLister interface {
	Exists(name string) bool
	List() []string
	Invalidate()
}

// GraphRebuilder rebuilds the whole graph from the embeddings source.
type GraphRebuilder interface {
	Rebuild(ctx context.Context) (*models.ResetResult, error)
}

// AdminService implements graph maintenance operations.
type AdminService struct {
	nodes     AdminNodeStore
	edges     EdgeCounter
	images    ImageLister
	rebuilder GraphRebuilder
	log       *logrus.Logger
}

// NewAdminService creates an AdminService.
func NewAdminService(nodes AdminNodeStore, edges EdgeCounter, images ImageLister, rebuilder GraphRebuilder, log *logrus.Logger) *AdminService {
	return &AdminService{nodes: nodes, edges: edges, images: images, rebuilder: rebuilder, log: log}
}

// Stats returns node and edge counts and refreshes the count gauges.
func (s *AdminService) Stats(ctx context.Context) (*models.StatsResult, error) {
	nodeCount, err := s.nodes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting nodes: %w", err)
	}

	edgeCount, err := s.edges.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting edges: %w", err)
	}

	metrics.NodeCount.Set(float64(nodeCount))
	metrics.EdgeCount.Set(float64(edgeCount))

	return &models.StatsResult{Nodes: nodeCount, Edges: edgeCount}, nil
}

// Sync compares stored image nodes against the files on disk without
// modifying anything.
func (s *AdminService) Sync(ctx context.Context) (*models.SyncResult, error) {
	s.images.Invalidate()

	dbPaths, err := s.nodes.ListPaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing node paths: %w", err)
	}

	fsImages := s.images.List()

	inDB := make(map[string]bool, len(dbPaths))
	missingInFS := make([]string, 0)

	for _, p := range dbPaths {
		name := models.NormalizePath(p)
		inDB[name] = true
		if !s.images.Exists(name) {
			missingInFS = append(missingInFS, p)
		}
	}

	missingInDB := make([]string, 0)
	for _, name := range fsImages {
		if !inDB[name] {
			missingInDB = append(missingInDB, name)
		}
	}

	return &models.SyncResult{
		DBImageCount:        len(dbPaths),
		FSImageCount:        len(fsImages),
		MissingInFilesystem: missingInFS,
		MissingInDatabase:   missingInDB,
		SyncNeeded:          len(missingInFS) > 0 || len(missingInDB) > 0,
	}, nil
}

// Fix removes nodes whose image file no longer exists on disk. Edges to
// removed nodes are dropped by the store.
func (s *AdminService) Fix(ctx context.Context) (*models.FixResult, error) {
	s.images.Invalidate()

	dbPaths, err := s.nodes.ListPaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing node paths: %w", err)
	}

	stale := make([]string, 0)
	for _, p := range dbPaths {
		if !s.images.Exists(models.NormalizePath(p)) {
			stale = append(stale, p)
		}
	}

	if len(stale) == 0 {
		return &models.FixResult{}, nil
	}

	removed, err := s.nodes.RemoveByPaths(ctx, stale)
	if err != nil {
		return nil, fmt.Errorf("removing stale nodes: %w", err)
	}

	s.log.WithField("removed", removed).Info("removed nodes for missing images")

	return &models.FixResult{RemovedCount: removed, RemovedImages: stale}, nil
}

// Reset wipes and rebuilds the graph from the embeddings source.
func (s *AdminService) Reset(ctx context.Context) (*models.ResetResult, error) {
	s.images.Invalidate()

	s.log.Info("rebuilding similarity graph")

	result, err := s.rebuilder.Rebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("rebuilding graph: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"nodes": result.Nodes,
		"edges": result.Edges,
	}).Info("graph rebuilt")

	return result, nil
}
