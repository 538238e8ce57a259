package explore

import (
	"sync"
	"time"
)

// Bounds is a visible coordinate box in the renderer's world space.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Pad grows the box by margin on every side.
func (b Bounds) Pad(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Contains reports whether the point lies inside the box.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// PositionedNode is a rendered node with its current layout position.
// Slices of these arrive in render order, which the candidate selection
// preserves.
type PositionedNode struct {
	ID string
	X  float64
	Y  float64
}

// SelectCandidates picks up to batch nodes inside the padded bounds that
// skip still reports false for, preserving input order.
func SelectCandidates(bounds Bounds, padding float64, nodes []PositionedNode, skip func(id string) bool, batch int) []string {
	padded := bounds.Pad(padding)

	var out []string

	for _, n := range nodes {
		if len(out) >= batch {
			break
		}

		if !padded.Contains(n.X, n.Y) {
			continue
		}

		if skip != nil && skip(n.ID) {
			continue
		}

		out = append(out, n.ID)
	}

	return out
}

// ViewportConfig carries the viewport expansion tunables.
type ViewportConfig struct {
	// Padding widens the visible box so nodes just off-screen are
	// expanded before the user pans onto them.
	Padding float64

	// Batch is the maximum number of nodes enqueued per settled viewport.
	Batch int

	// Debounce is the quiet period after the last pan/zoom event before
	// candidates are selected.
	Debounce time.Duration
}

const (
	defaultPadding  = 100
	defaultBatch    = 3
	defaultDebounce = 250 * time.Millisecond
)

// Viewport turns debounced pan/zoom events into viewport-driven expansion
// requests. Updates overwrite each other during the quiet period; only the
// final state is acted on.
type Viewport struct {
	session *Session
	queue   Enqueuer

	padding  float64
	batch    int
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	bounds Bounds
	nodes  []PositionedNode
}

// NewViewport creates a viewport handler feeding the given queue.
func NewViewport(session *Session, queue Enqueuer, cfg ViewportConfig) *Viewport {
	if cfg.Padding <= 0 {
		cfg.Padding = defaultPadding
	}

	if cfg.Batch <= 0 || cfg.Batch > defaultBatch {
		cfg.Batch = defaultBatch
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}

	return &Viewport{
		session:  session,
		queue:    queue,
		padding:  cfg.Padding,
		batch:    cfg.Batch,
		debounce: cfg.Debounce,
	}
}

// Update records the latest visible bounds and rendered node positions and
// restarts the debounce timer.
func (v *Viewport) Update(bounds Bounds, nodes []PositionedNode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.bounds = bounds
	v.nodes = nodes

	if v.timer != nil {
		v.timer.Stop()
	}

	v.timer = time.AfterFunc(v.debounce, v.settle)
}

// Flush runs candidate selection immediately with the last recorded state,
// bypassing the debounce. Used on drag-end events and in tests.
func (v *Viewport) Flush() {
	v.mu.Lock()
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.mu.Unlock()

	v.settle()
}

// Stop cancels any pending debounce timer.
func (v *Viewport) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

func (v *Viewport) settle() {
	v.mu.Lock()
	bounds := v.bounds
	nodes := v.nodes
	v.mu.Unlock()

	ids := SelectCandidates(bounds, v.padding, nodes, v.session.Expanded, v.batch)

	for _, id := range ids {
		v.queue.Enqueue(id, false)
	}
}
