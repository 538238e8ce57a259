package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simgraphai/simgraph/client"
)

func asAPIError(err error, target **client.APIError) bool {
	return errors.As(err, target)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := client.New("ftp://example.com"); err == nil {
		t.Error("ftp scheme should be rejected")
	}

	if _, err := client.New("://nope"); err == nil {
		t.Error("unparseable URL should be rejected")
	}
}

func TestNeighbors_SendsQueryAndDecodes(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/neighbors" {
			t.Errorf("path = %q", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("image_path") != "a.png" || q.Get("threshold") != "0.7" || q.Get("limit") != "20" {
			t.Errorf("query = %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"nodes": [
				{"id": "a", "path": "a.png", "label": "a", "isCenter": true},
				{"id": "b", "path": "b.png", "label": "b", "isCenter": false}
			],
			"edges": [{"id": "e-a-b", "source": "a", "target": "b", "weight": 0.9}]
		}`))
	})

	g, err := c.Neighbors(context.Background(), "a.png", 0.7, 20)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("graph = %+v", g)
	}

	if !g.Nodes[0].IsCenter || g.Nodes[0].ID != "a" {
		t.Errorf("center node = %+v", g.Nodes[0])
	}

	if g.Edges[0].Weight != 0.9 {
		t.Errorf("weight = %v", g.Edges[0].Weight)
	}
}

func TestNeighbors_OmitsDefaultParams(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Has("threshold") || q.Has("limit") {
			t.Errorf("zero values should be omitted, got %v", q)
		}

		_, _ = w.Write([]byte(`{"nodes": [], "edges": []}`))
	})

	if _, err := c.Neighbors(context.Background(), "a.png", 0, 0); err != nil {
		t.Fatal(err)
	}
}

func TestExtendedNeighbors_DecodesLevels(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extended-neighbors" {
			t.Errorf("path = %q", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("depth") != "2" || q.Get("limit_per_level") != "5" || q.Get("max_nodes") != "50" {
			t.Errorf("query = %v", q)
		}

		_, _ = w.Write([]byte(`{
			"nodes": [
				{"id": "a", "path": "a.png", "label": "a", "isCenter": true, "level": 0},
				{"id": "b", "path": "b.png", "label": "b", "isCenter": false, "level": 1}
			],
			"edges": []
		}`))
	})

	g, err := c.ExtendedNeighbors(context.Background(), "a.png", 0.5, 2, 5, 50)
	if err != nil {
		t.Fatal(err)
	}

	if g.Nodes[1].Level == nil || *g.Nodes[1].Level != 1 {
		t.Errorf("level = %v, want 1", g.Nodes[1].Level)
	}
}

func TestAPIError_Decoding(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "not_found", "message": "image not found", "request_id": "req-1"}`))
	})

	_, err := c.Neighbors(context.Background(), "missing.png", 0, 0)
	if err == nil {
		t.Fatal("expected an error")
	}

	if !client.IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}

	if client.IsInvalidRequest(err) {
		t.Error("IsInvalidRequest should be false")
	}

	var apiErr *client.APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("error is not an APIError: %v", err)
	}

	if apiErr.Code != "not_found" || apiErr.RequestID != "req-1" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := c.Stats(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *client.APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("error is not an APIError: %v", err)
	}

	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "Bad Gateway" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestReset_Posts(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/admin/reset" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}

		_, _ = w.Write([]byte(`{"nodes": 10, "edges": 25}`))
	})

	result, err := c.Reset(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if result.Nodes != 10 || result.Edges != 25 {
		t.Errorf("result = %+v", result)
	}
}

func TestSearch_UnwrapsResults(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "sunset" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}

		_, _ = w.Write([]byte(`{"results": [{"id": "n1", "path": "sunset.jpg", "label": "sunset"}]}`))
	})

	nodes, err := c.Search(context.Background(), "sunset", 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(nodes) != 1 || nodes[0].ID != "n1" {
		t.Errorf("nodes = %+v", nodes)
	}
}
