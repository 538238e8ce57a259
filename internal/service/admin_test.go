package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/simgraphai/simgraph/internal/models"
)

type mockAdminNodes struct {
	paths   []string
	listErr error

	removed []string
}

func (m *mockAdminNodes) ListPaths(context.Context) ([]string, error) {
	return m.paths, m.listErr
}

func (m *mockAdminNodes) Count(context.Context) (int64, error) {
	return int64(len(m.paths)), nil
}

func (m *mockAdminNodes) RemoveByPaths(_ context.Context, paths []string) (int, error) {
	m.removed = paths
	return len(paths), nil
}

type mockEdgeCounter struct {
	count int64
	err   error
}

func (m *mockEdgeCounter) Count(context.Context) (int64, error) {
	return m.count, m.err
}

type mockImageLister struct {
	files       map[string]bool
	invalidated int
}

func (m *mockImageLister) Exists(name string) bool { return m.files[name] }

func (m *mockImageLister) List() []string {
	out := make([]string, 0, len(m.files))
	for name := range m.files {
		out = append(out, name)
	}
	return out
}

func (m *mockImageLister) Invalidate() { m.invalidated++ }

type mockRebuilder struct {
	result *models.ResetResult
	err    error
	calls  int
}

func (m *mockRebuilder) Rebuild(context.Context) (*models.ResetResult, error) {
	m.calls++
	return m.result, m.err
}

func TestAdminStats(t *testing.T) {
	t.Parallel()

	svc := NewAdminService(
		&mockAdminNodes{paths: []string{"a.png", "b.png"}},
		&mockEdgeCounter{count: 7},
		&mockImageLister{},
		&mockRebuilder{},
		testLogger(),
	)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.Nodes != 2 || stats.Edges != 7 {
		t.Errorf("stats = %+v, want 2 nodes and 7 edges", stats)
	}
}

func TestAdminSync(t *testing.T) {
	t.Parallel()

	images := &mockImageLister{files: map[string]bool{"a.png": true, "new.png": true}}
	svc := NewAdminService(
		&mockAdminNodes{paths: []string{"a.png", "stale.png"}},
		&mockEdgeCounter{},
		images,
		&mockRebuilder{},
		testLogger(),
	)

	result, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if images.invalidated != 1 {
		t.Error("Sync should rescan the image directory")
	}

	if !reflect.DeepEqual(result.MissingInFilesystem, []string{"stale.png"}) {
		t.Errorf("missing in fs = %v, want [stale.png]", result.MissingInFilesystem)
	}

	if !reflect.DeepEqual(result.MissingInDatabase, []string{"new.png"}) {
		t.Errorf("missing in db = %v, want [new.png]", result.MissingInDatabase)
	}

	if !result.SyncNeeded {
		t.Error("SyncNeeded should be true when either side has gaps")
	}
}

func TestAdminSync_CleanState(t *testing.T) {
	t.Parallel()

	svc := NewAdminService(
		&mockAdminNodes{paths: []string{"a.png"}},
		&mockEdgeCounter{},
		&mockImageLister{files: map[string]bool{"a.png": true}},
		&mockRebuilder{},
		testLogger(),
	)

	result, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if result.SyncNeeded {
		t.Errorf("SyncNeeded should be false, got %+v", result)
	}
}

func TestAdminFix_RemovesStaleNodes(t *testing.T) {
	t.Parallel()

	nodes := &mockAdminNodes{paths: []string{"a.png", "gone.png"}}
	svc := NewAdminService(
		nodes,
		&mockEdgeCounter{},
		&mockImageLister{files: map[string]bool{"a.png": true}},
		&mockRebuilder{},
		testLogger(),
	)

	result, err := svc.Fix(context.Background())
	if err != nil {
		t.Fatalf("Fix: %v", err)
	}

	if result.RemovedCount != 1 || !reflect.DeepEqual(nodes.removed, []string{"gone.png"}) {
		t.Errorf("removed = %v (%d), want [gone.png]", nodes.removed, result.RemovedCount)
	}
}

func TestAdminFix_NoopWhenClean(t *testing.T) {
	t.Parallel()

	nodes := &mockAdminNodes{paths: []string{"a.png"}}
	svc := NewAdminService(
		nodes,
		&mockEdgeCounter{},
		&mockImageLister{files: map[string]bool{"a.png": true}},
		&mockRebuilder{},
		testLogger(),
	)

	result, err := svc.Fix(context.Background())
	if err != nil {
		t.Fatalf("Fix: %v", err)
	}

	if result.RemovedCount != 0 || nodes.removed != nil {
		t.Errorf("expected no removals, got %+v", result)
	}
}

func TestAdminReset(t *testing.T) {
	t.Parallel()

	rebuilder := &mockRebuilder{result: &models.ResetResult{Nodes: 10, Edges: 20}}
	images := &mockImageLister{}
	svc := NewAdminService(&mockAdminNodes{}, &mockEdgeCounter{}, images, rebuilder, testLogger())

	result, err := svc.Reset(context.Background())
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if rebuilder.calls != 1 {
		t.Errorf("rebuilder calls = %d, want 1", rebuilder.calls)
	}

	if images.invalidated != 1 {
		t.Error("Reset should rescan the image directory")
	}

	if result.Nodes != 10 || result.Edges != 20 {
		t.Errorf("result = %+v", result)
	}
}

func TestAdminReset_PropagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	svc := NewAdminService(&mockAdminNodes{}, &mockEdgeCounter{}, &mockImageLister{}, &mockRebuilder{err: wantErr}, testLogger())

	if _, err := svc.Reset(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}
}
