package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/models"
)

// SearchStore defines the data access SearchService depends on.
type SearchStore interface {
	SearchByDescription(ctx context.Context, query string, limit int) ([]models.Node, error)
}

// SearchService finds image nodes by description text.
type SearchService struct {
	store SearchStore
	log   *logrus.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(store SearchStore, log *logrus.Logger) *SearchService {
	return &SearchService{store: store, log: log}
}

// ByDescription performs a case-insensitive substring search over node
// descriptions and labels.
func (s *SearchService) ByDescription(ctx context.Context, query string, limit int) ([]models.Node, error) {
	if limit < 1 {
		return nil, models.ErrInvalidLimit
	}

	if limit > maxNeighborLimit {
		limit = maxNeighborLimit
	}

	s.log.WithFields(logrus.Fields{
		"query": query,
		"limit": limit,
	}).Debug("search.by_description")

	return s.store.SearchByDescription(ctx, query, limit)
}
