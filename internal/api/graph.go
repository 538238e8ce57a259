package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/models"
)

// Extended traversal defaults.
const (
	defaultDepth         = 1
	defaultLimitPerLevel = 10
	defaultMaxNodes      = 100
)

// GraphHandler serves the neighbor and traversal endpoints.
type GraphHandler struct {
	svc              TraversalProvider
	log              *logrus.Logger
	defaultThreshold float64
	defaultLimit     int
}

// NewGraphHandler creates a GraphHandler with the given service and defaults.
func NewGraphHandler(svc TraversalProvider, log *logrus.Logger, defaultThreshold float64, defaultLimit int) *GraphHandler {
	return &GraphHandler{
		svc:              svc,
		log:              log,
		defaultThreshold: defaultThreshold,
		defaultLimit:     defaultLimit,
	}
}

// Neighbors handles GET /neighbors: the direct neighbors of one image.
func (h *GraphHandler) Neighbors(c *gin.Context) {
	imagePath := c.Query("image_path")
	threshold := parseFloat(c.Query("threshold"), h.defaultThreshold)
	limit := parseInt(c.Query("limit"), h.defaultLimit)

	result, err := h.svc.Neighbors(c.Request.Context(), imagePath, threshold, limit)
	if err != nil {
		h.respondGraphError(c, err, "getting neighbors")

		return
	}

	c.JSON(http.StatusOK, result)
}

// ExtendedNeighbors handles GET /extended-neighbors: a bounded multi-level
// traversal with each node annotated with its BFS level.
func (h *GraphHandler) ExtendedNeighbors(c *gin.Context) {
	imagePath := c.Query("image_path")
	threshold := parseFloat(c.Query("threshold"), h.defaultThreshold)
	depth := parseInt(c.Query("depth"), defaultDepth)
	limitPerLevel := parseInt(c.Query("limit_per_level"), defaultLimitPerLevel)
	maxNodes := parseInt(c.Query("max_nodes"), defaultMaxNodes)

	result, err := h.svc.Traverse(c.Request.Context(), imagePath, threshold, depth, limitPerLevel, maxNodes)
	if err != nil {
		h.respondGraphError(c, err, "traversing graph")

		return
	}

	c.JSON(http.StatusOK, result)
}

// respondGraphError maps service errors onto HTTP responses.
func (h *GraphHandler) respondGraphError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, models.ErrMissingImagePath),
		errors.Is(err, models.ErrInvalidThreshold),
		errors.Is(err, models.ErrInvalidDepth),
		errors.Is(err, models.ErrInvalidLimit),
		errors.Is(err, models.ErrInvalidMaxNodes):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, models.ErrNodeNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "image not found")
	default:
		h.log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
