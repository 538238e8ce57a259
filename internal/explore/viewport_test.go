package explore_test

import (
	"testing"

	"github.com/simgraphai/simgraph/internal/explore"
	"github.com/simgraphai/simgraph/internal/models"
)

func TestSelectCandidates_CullsToPaddedBounds(t *testing.T) {
	t.Parallel()

	bounds := explore.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	nodes := []explore.PositionedNode{
		{ID: "inside", X: 50, Y: 50},
		{ID: "in-padding", X: 105, Y: 50},
		{ID: "far-out", X: 500, Y: 500},
	}

	got := explore.SelectCandidates(bounds, 10, nodes, nil, 3)

	want := []string{"inside", "in-padding"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSelectCandidates_SkipsAndBatches(t *testing.T) {
	t.Parallel()

	bounds := explore.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	nodes := []explore.PositionedNode{
		{ID: "a", X: 10, Y: 10},
		{ID: "b", X: 20, Y: 20},
		{ID: "c", X: 30, Y: 30},
		{ID: "d", X: 40, Y: 40},
	}

	skip := func(id string) bool { return id == "a" }

	got := explore.SelectCandidates(bounds, 0, nodes, skip, 2)

	// a is skipped; the batch caps the rest at two, in render order.
	want := []string{"b", "c"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestViewport_FlushEnqueuesVisibleUnexpanded(t *testing.T) {
	t.Parallel()

	s := newSession(100)
	s.Bootstrap(bootstrapResult())

	q := &recordingQueue{accept: true}

	v := explore.NewViewport(s, q, explore.ViewportConfig{Padding: 10, Batch: 3})

	v.Update(explore.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, []explore.PositionedNode{
		{ID: "center", X: 50, Y: 50}, // already expanded
		{ID: "b", X: 60, Y: 50},
		{ID: "c", X: 500, Y: 500}, // off-screen
	})
	v.Flush()

	if len(q.calls) != 1 {
		t.Fatalf("calls = %+v, want just b", q.calls)
	}

	if q.calls[0].id != "b" || q.calls[0].priority {
		t.Errorf("call = %+v, want non-priority b", q.calls[0])
	}
}

func TestViewport_UpdateOverwritesPendingState(t *testing.T) {
	t.Parallel()

	s := newSession(100)
	s.Bootstrap(&models.GraphResult{
		Nodes: []models.Node{
			{ID: "center", Path: "center.png", IsCenter: true},
			{ID: "b", Path: "b.png"},
			{ID: "c", Path: "c.png"},
		},
	})

	q := &recordingQueue{accept: true}
	v := explore.NewViewport(s, q, explore.ViewportConfig{Padding: 10, Batch: 3})

	inView := explore.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

	// The first update is superseded before the debounce settles.
	v.Update(inView, []explore.PositionedNode{{ID: "b", X: 50, Y: 50}})
	v.Update(inView, []explore.PositionedNode{{ID: "c", X: 50, Y: 50}})
	v.Flush()

	if len(q.calls) != 1 || q.calls[0].id != "c" {
		t.Fatalf("calls = %+v, want only c from the latest update", q.calls)
	}
}
