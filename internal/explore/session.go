package explore

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/models"
)

// Enqueuer accepts expansion requests for visible nodes. Implemented by
// Scheduler; split out so Session can be tested without a running worker.
type Enqueuer interface {
	Enqueue(nodeID string, priority bool) bool
}

// SessionConfig carries the tunables for one exploration session.
type SessionConfig struct {
	// Threshold is the similarity cutoff used for expansion fetches and as
	// the weight of synthesized parent edges.
	Threshold float64

	// MaxNodes is the global node budget; once reached no further
	// expansions are scheduled.
	MaxNodes int

	// Prefetch, when set, is called once per newly merged node with the
	// node's image path. Failures are the callback's problem.
	Prefetch func(path string)

	Log *logrus.Logger
}

// Session owns the running merged graph for one center image. All graph
// mutation funnels through it, one operation at a time; fetch completions
// from earlier centers are fenced off by the generation token.
type Session struct {
	mu       sync.Mutex
	graph    *Graph
	expanded map[string]struct{}
	centerID string

	gen atomic.Uint64

	threshold float64
	maxNodes  int
	prefetch  func(path string)
	queue     Enqueuer
	log       *logrus.Logger
}

const (
	defaultThreshold = 0.5
	defaultMaxNodes  = 100
)

// NewSession creates an empty session.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = defaultThreshold
	}

	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = defaultMaxNodes
	}

	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}

	return &Session{
		graph:     NewGraph(),
		expanded:  make(map[string]struct{}),
		threshold: cfg.Threshold,
		maxNodes:  cfg.MaxNodes,
		prefetch:  cfg.Prefetch,
		log:       cfg.Log,
	}
}

// AttachScheduler wires the scheduler that RequestExpand delegates to.
func (s *Session) AttachScheduler(q Enqueuer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = q
}

// Reset discards the current graph, installs center as the sole node at
// level 0, and bumps the generation so in-flight fetches for the previous
// center are dropped on arrival. Returns the new generation.
func (s *Session) Reset(center models.Node) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.gen.Add(1)

	center.IsCenter = true
	center.Level = models.IntPtr(0)

	s.graph = NewGraph()
	s.graph.AddNode(center)
	s.expanded = make(map[string]struct{})
	s.centerID = center.ID

	s.log.WithFields(logrus.Fields{
		"center":     center.Path,
		"generation": gen,
	}).Debug("session reset")

	return gen
}

// Bootstrap installs the initial traversal result for the current center
// and marks the center itself expanded, since its neighbors are exactly
// what the result contains.
func (s *Session) Bootstrap(initial *models.GraphResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range initial.Nodes {
		if n.IsCenter {
			s.centerID = n.ID
			if n.Level == nil {
				n.Level = models.IntPtr(0)
			}
		}

		if s.graph.AddNode(n) && s.prefetch != nil {
			go s.prefetch(n.Path)
		}
	}

	for _, e := range initial.Edges {
		if s.graph.HasNode(e.Source) && s.graph.HasNode(e.Target) {
			s.graph.AddEdge(e)
		}
	}

	if s.centerID != "" {
		s.expanded[s.centerID] = struct{}{}
	}
}

// RequestExpand asks the scheduler to expand the node with priority,
// unless it is already expanded. Returns whether the request was queued.
func (s *Session) RequestExpand(nodeID string) bool {
	s.mu.Lock()
	queue := s.queue
	_, done := s.expanded[nodeID]
	s.mu.Unlock()

	if done || queue == nil {
		return false
	}

	return queue.Enqueue(nodeID, true)
}

// Merge folds a partial neighbor result fetched for sourceNodeID into the
// graph. Every insertion is guarded by an id-presence check, so replaying
// the same partial is a no-op. New nodes without a level inherit
// parent.level+1; new nodes the partial left unattached get a synthesized
// edge back to the source so the rendered graph stays connected.
// Returns the number of nodes added.
func (s *Session) Merge(sourceNodeID string, partial *models.GraphResult) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expanded[sourceNodeID] = struct{}{}

	source, ok := s.graph.Node(sourceNodeID)
	if !ok {
		s.log.WithField("source", sourceNodeID).Debug("merge source no longer in graph, dropping partial")

		return 0
	}

	var childLevel *int
	if source.Level != nil {
		childLevel = models.IntPtr(*source.Level + 1)
	}

	var added []models.Node

	for _, n := range partial.Nodes {
		if s.graph.HasNode(n.ID) {
			continue
		}

		n.IsCenter = false
		if n.Level == nil {
			n.Level = childLevel
		}

		s.graph.AddNode(n)
		added = append(added, n)
	}

	for _, e := range partial.Edges {
		if s.graph.HasNode(e.Source) && s.graph.HasNode(e.Target) {
			s.graph.AddEdge(e)
		}
	}

	for _, n := range added {
		if !s.graph.HasEdgeBetween(sourceNodeID, n.ID) {
			s.graph.AddEdge(models.NewEdge(sourceNodeID, n.ID, s.threshold))
		}

		if s.prefetch != nil {
			go s.prefetch(n.Path)
		}
	}

	return len(added)
}

// Generation returns the current generation token.
func (s *Session) Generation() uint64 { return s.gen.Load() }

// Threshold returns the session's similarity cutoff.
func (s *Session) Threshold() float64 { return s.threshold }

// Expanded reports whether the node's neighbors have been fetched already.
func (s *Session) Expanded(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.expanded[nodeID]

	return ok
}

// NodeCount returns the number of nodes currently merged.
func (s *Session) NodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.graph.NodeCount()
}

// AtBudget reports whether the node budget has been reached.
func (s *Session) AtBudget() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.graph.NodeCount() >= s.maxNodes
}

// Node looks up a merged node by id.
func (s *Session) Node(id string) (models.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.graph.Node(id)
}

// Snapshot returns copies of the merged nodes and edges in insertion
// order, for handing to a renderer.
func (s *Session) Snapshot() ([]models.Node, []models.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.graph.Nodes(), s.graph.Edges()
}
