package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/models"
)

const defaultSearchLimit = 25

// SearchHandler serves the description search endpoint.
type SearchHandler struct {
	svc SearchProvider
	log *logrus.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc SearchProvider, log *logrus.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: log}
}

// ByDescription handles GET /api/v1/search?q=<text>.
func (h *SearchHandler) ByDescription(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "q is required")

		return
	}

	limit := parseInt(c.Query("limit"), defaultSearchLimit)

	nodes, err := h.svc.ByDescription(c.Request.Context(), query, limit)
	if err != nil {
		if errors.Is(err, models.ErrInvalidLimit) {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

			return
		}

		h.log.WithError(err).Error("searching descriptions")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"results": nodes})
}
