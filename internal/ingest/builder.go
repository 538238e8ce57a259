package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/vecgo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/simgraphai/simgraph/internal/models"
	"github.com/simgraphai/simgraph/internal/store"
)

// knnCandidates is how many nearest neighbors are examined per node when
// deriving edges. Candidates below the similarity threshold are discarded,
// so this only needs to comfortably exceed the typical above-threshold
// neighborhood size.
const knnCandidates = 50

// NodeWriter is the node data access Builder depends on.
type NodeWriter interface {
	UpsertRecords(ctx context.Context, records []models.NodeRecord) (int, error)
	AllRecords(ctx context.Context) ([]models.NodeRecord, error)
}

// EdgeReplacer swaps the full stored edge set.
type EdgeReplacer interface {
	Replace(ctx context.Context, pairs []store.EdgePair) (int, error)
}

// Builder loads embeddings and rebuilds the similarity graph.
type Builder struct {
	nodes     NodeWriter
	edges     EdgeReplacer
	file      string
	threshold float64
	workers   int
	log       *logrus.Logger
}

// NewBuilder creates a Builder reading embeddings from file. Edges are kept
// when cosine similarity is at least threshold. KNN queries run on up to
// workers goroutines.
func NewBuilder(nodes NodeWriter, edges EdgeReplacer, file string, threshold float64, workers int, log *logrus.Logger) *Builder {
	if workers < 1 {
		workers = 1
	}

	return &Builder{
		nodes:     nodes,
		edges:     edges,
		file:      file,
		threshold: threshold,
		workers:   workers,
		log:       log,
	}
}

// Rebuild loads the embeddings file, upserts all nodes, and recomputes the
// edge set from scratch.
func (b *Builder) Rebuild(ctx context.Context) (*models.ResetResult, error) {
	records, err := LoadRecords(b.file)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("embeddings file %s contains no records", b.file)
	}

	upserted, err := b.nodes.UpsertRecords(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("upserting nodes: %w", err)
	}

	b.log.WithField("nodes", upserted).Info("nodes upserted from embeddings file")

	edgeCount, err := b.RebuildEdges(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ResetResult{Nodes: upserted, Edges: edgeCount}, nil
}

// RebuildEdges recomputes the edge set from the embeddings stored in the
// database. An in-memory HNSW index answers the per-node KNN queries; pairs
// whose cosine similarity clears the threshold replace the stored edges.
func (b *Builder) RebuildEdges(ctx context.Context) (int, error) {
	records, err := b.nodes.AllRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading stored embeddings: %w", err)
	}

	usable := records[:0]
	dim := 0

	for _, r := range records {
		if len(r.Embedding) == 0 {
			continue
		}
		if dim == 0 {
			dim = len(r.Embedding)
		}
		if len(r.Embedding) != dim {
			b.log.WithFields(logrus.Fields{
				"path": r.Path,
				"dim":  len(r.Embedding),
				"want": dim,
			}).Warn("skipping node with mismatched embedding dimension")
			continue
		}
		usable = append(usable, r)
	}

	if len(usable) == 0 {
		return 0, fmt.Errorf("no stored embeddings to index")
	}

	db, err := vecgo.HNSW[string](dim).Cosine().Build()
	if err != nil {
		return 0, fmt.Errorf("building vector index: %w", err)
	}
	defer db.Close() //nolint:errcheck // in-memory index.

	items := make([]vecgo.VectorWithData[string], len(usable))
	for i, r := range usable {
		items[i] = vecgo.VectorWithData[string]{Vector: r.Embedding, Data: r.ID}
	}

	batch := db.BatchInsert(ctx, items)
	for i, insErr := range batch.Errors {
		if insErr != nil {
			return 0, fmt.Errorf("indexing node %s: %w", usable[i].Path, insErr)
		}
	}

	var (
		mu    sync.Mutex
		pairs = make(map[[2]string]float64)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, r := range usable {
		g.Go(func() error {
			// One extra candidate since the node matches itself.
			results, err := db.KNNSearch(gctx, r.Embedding, knnCandidates+1)
			if err != nil {
				return fmt.Errorf("searching neighbors of %s: %w", r.Path, err)
			}

			for _, res := range results {
				if res.Data == r.ID {
					continue
				}

				similarity := 1 - float64(res.Distance)
				if similarity < b.threshold {
					continue
				}

				src, dst := r.ID, res.Data
				if src > dst {
					src, dst = dst, src
				}

				mu.Lock()
				if existing, ok := pairs[[2]string{src, dst}]; !ok || similarity > existing {
					pairs[[2]string{src, dst}] = similarity
				}
				mu.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	edgePairs := make([]store.EdgePair, 0, len(pairs))
	for pair, weight := range pairs {
		if weight > 1 {
			weight = 1
		}
		edgePairs = append(edgePairs, store.EdgePair{Source: pair[0], Target: pair[1], Weight: weight})
	}

	count, err := b.edges.Replace(ctx, edgePairs)
	if err != nil {
		return 0, fmt.Errorf("replacing edges: %w", err)
	}

	b.log.WithFields(logrus.Fields{
		"nodes": len(usable),
		"edges": count,
	}).Info("similarity edges rebuilt")

	return count, nil
}
