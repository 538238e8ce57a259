package explore

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/models"
)

// Fetcher retrieves the direct neighbors of one image. Implemented by the
// API client; mocked in tests.
type Fetcher interface {
	Neighbors(ctx context.Context, imagePath string, threshold float64, limit int) (*models.GraphResult, error)
}

// Result status for one processed queue item.
const (
	StatusMerged = "merged"
	StatusFailed = "failed"
	StatusStale  = "stale"
)

// Result reports the outcome of one expansion.
type Result struct {
	NodeID string
	Status string
	Added  int
	Err    error
}

// SchedulerConfig carries the scheduler tunables.
type SchedulerConfig struct {
	// NeighborLimit is the fanout requested per expansion fetch.
	NeighborLimit int

	// Pace is the cooperative delay after each processed item, merged or
	// failed, before the next one is picked up.
	Pace time.Duration

	// FetchTimeout bounds each neighbor fetch.
	FetchTimeout time.Duration

	// QueueSize bounds each of the two queues; enqueues beyond it are
	// refused rather than blocking the caller.
	QueueSize int

	// OnResult, when set, is called after every processed item.
	OnResult func(Result)

	Log *logrus.Logger
}

type queueItem struct {
	nodeID string
	gen    uint64
}

// Scheduler drains expansion requests one at a time. Double-click requests
// go through the priority queue and win over viewport-driven ones; a
// single worker goroutine keeps merges strictly sequential.
type Scheduler struct {
	session *Session
	fetch   Fetcher

	priority chan queueItem
	fifo     chan queueItem

	mu     sync.Mutex
	queued map[string]struct{}

	limit    int
	pace     time.Duration
	timeout  time.Duration
	onResult func(Result)
	log      *logrus.Logger
}

const (
	defaultNeighborLimit = 10
	defaultPace          = 150 * time.Millisecond
	defaultFetchTimeout  = 10 * time.Second
	defaultQueueSize     = 64
)

// NewScheduler creates a scheduler bound to one session. Call Run to start
// the worker.
func NewScheduler(session *Session, fetch Fetcher, cfg SchedulerConfig) *Scheduler {
	if cfg.NeighborLimit <= 0 {
		cfg.NeighborLimit = defaultNeighborLimit
	}

	if cfg.Pace <= 0 {
		cfg.Pace = defaultPace
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}

	return &Scheduler{
		session:  session,
		fetch:    fetch,
		priority: make(chan queueItem, cfg.QueueSize),
		fifo:     make(chan queueItem, cfg.QueueSize),
		queued:   make(map[string]struct{}),
		limit:    cfg.NeighborLimit,
		pace:     cfg.Pace,
		timeout:  cfg.FetchTimeout,
		onResult: cfg.OnResult,
		log:      cfg.Log,
	}
}

// Enqueue adds a node to the expansion queue. Priority items jump the
// viewport-driven FIFO. Returns false if the node is already expanded,
// already queued, the budget is exhausted, or the queue is full.
func (s *Scheduler) Enqueue(nodeID string, priority bool) bool {
	if s.session.Expanded(nodeID) {
		return false
	}

	if s.session.AtBudget() {
		s.Drain()

		return false
	}

	s.mu.Lock()
	if _, ok := s.queued[nodeID]; ok {
		s.mu.Unlock()

		return false
	}
	s.queued[nodeID] = struct{}{}
	s.mu.Unlock()

	it := queueItem{nodeID: nodeID, gen: s.session.Generation()}

	dst := s.fifo
	if priority {
		dst = s.priority
	}

	select {
	case dst <- it:
		return true
	default:
		s.mu.Lock()
		delete(s.queued, nodeID)
		s.mu.Unlock()

		return false
	}
}

// Drain discards every pending item, reporting each as stale so callers
// tracking outstanding requests see exactly one result per accepted
// enqueue. Called when the node budget is reached; the queues stay usable
// for the next session.
func (s *Scheduler) Drain() {
	for {
		select {
		case it := <-s.priority:
			s.drop(it)
		case it := <-s.fifo:
			s.drop(it)
		default:
			s.mu.Lock()
			s.queued = make(map[string]struct{})
			s.mu.Unlock()

			return
		}
	}
}

func (s *Scheduler) drop(it queueItem) {
	s.mu.Lock()
	delete(s.queued, it.nodeID)
	s.mu.Unlock()

	s.report(Result{NodeID: it.nodeID, Status: StatusStale})
}

// Pending returns the number of queued items.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queued)
}

// Run processes the queues until ctx is cancelled. Exactly one item is in
// flight at a time; a fixed pace delay follows each processed item.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		var it queueItem

		select {
		case <-ctx.Done():
			return
		case it = <-s.priority:
		default:
			select {
			case <-ctx.Done():
				return
			case it = <-s.priority:
			case it = <-s.fifo:
			}
		}

		s.process(ctx, it)

		timer := time.NewTimer(s.pace)
		select {
		case <-ctx.Done():
			timer.Stop()

			return
		case <-timer.C:
		}
	}
}

func (s *Scheduler) process(ctx context.Context, it queueItem) {
	s.mu.Lock()
	delete(s.queued, it.nodeID)
	s.mu.Unlock()

	if it.gen != s.session.Generation() {
		s.report(Result{NodeID: it.nodeID, Status: StatusStale})

		return
	}

	if s.session.AtBudget() {
		s.Drain()
		s.report(Result{NodeID: it.nodeID, Status: StatusStale})

		return
	}

	node, ok := s.session.Node(it.nodeID)
	if !ok || s.session.Expanded(it.nodeID) {
		s.report(Result{NodeID: it.nodeID, Status: StatusStale})

		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	partial, err := s.fetch.Neighbors(fetchCtx, node.Path, s.session.Threshold(), s.limit)
	cancel()

	if err != nil {
		// The node stays unexpanded; a later viewport pass or
		// double-click can retry it.
		s.log.WithError(err).WithField("node", node.Path).Warn("expansion fetch failed")
		s.report(Result{NodeID: it.nodeID, Status: StatusFailed, Err: err})

		return
	}

	if it.gen != s.session.Generation() {
		s.report(Result{NodeID: it.nodeID, Status: StatusStale})

		return
	}

	added := s.session.Merge(it.nodeID, partial)

	s.log.WithFields(logrus.Fields{
		"node":  node.Path,
		"added": added,
		"total": s.session.NodeCount(),
	}).Debug("expansion merged")

	s.report(Result{NodeID: it.nodeID, Status: StatusMerged, Added: added})
}

func (s *Scheduler) report(r Result) {
	if s.onResult != nil {
		s.onResult(r)
	}
}
