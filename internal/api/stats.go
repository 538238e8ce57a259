package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves the graph statistics endpoint.
type StatsHandler struct {
	svc AdminProvider
	log *logrus.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc AdminProvider, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

// GetStats handles GET /api/v1/stats: aggregate node and edge counts.
func (h *StatsHandler) GetStats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("collecting stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, result)
}
