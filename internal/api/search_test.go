package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simgraphai/simgraph/internal/api"
	"github.com/simgraphai/simgraph/internal/models"
)

func searchRouter(svc *mockSearch) *gin.Engine {
	r := gin.New()
	h := api.NewSearchHandler(svc, testLogger())
	r.GET("/search", h.ByDescription)

	return r
}

func TestSearch_MissingQuery(t *testing.T) {
	t.Parallel()

	svc := &mockSearch{
		byDescription: func(context.Context, string, int) ([]models.Node, error) {
			t.Error("service should not be called without q")
			return nil, nil
		},
	}

	w := doRequest(searchRouter(svc), http.MethodGet, "/search")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSearch_Results(t *testing.T) {
	t.Parallel()

	var gotQuery string
	var gotLimit int

	svc := &mockSearch{
		byDescription: func(_ context.Context, query string, limit int) ([]models.Node, error) {
			gotQuery = query
			gotLimit = limit
			return []models.Node{
				{ID: "n1", Path: "sunset.jpg", Label: "sunset"},
				{ID: "n2", Path: "beach.jpg", Label: "beach"},
			}, nil
		},
	}

	w := doRequest(searchRouter(svc), http.MethodGet, "/search?q=warm+colors&limit=5")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotQuery != "warm colors" {
		t.Errorf("query = %q, want %q", gotQuery, "warm colors")
	}

	if gotLimit != 5 {
		t.Errorf("limit = %d, want 5", gotLimit)
	}

	var body struct {
		Results []models.Node `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(body.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(body.Results))
	}

	if body.Results[0].ID != "n1" {
		t.Errorf("first result = %q, want n1", body.Results[0].ID)
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	t.Parallel()

	var gotLimit int

	svc := &mockSearch{
		byDescription: func(_ context.Context, _ string, limit int) ([]models.Node, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	w := doRequest(searchRouter(svc), http.MethodGet, "/search?q=dog")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if gotLimit != 25 {
		t.Errorf("limit = %d, want default 25", gotLimit)
	}
}

func TestSearch_InvalidLimit(t *testing.T) {
	t.Parallel()

	svc := &mockSearch{
		byDescription: func(context.Context, string, int) ([]models.Node, error) {
			return nil, models.ErrInvalidLimit
		},
	}

	w := doRequest(searchRouter(svc), http.MethodGet, "/search?q=dog&limit=-3")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
