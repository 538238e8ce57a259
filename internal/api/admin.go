package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler serves graph maintenance endpoints.
type AdminHandler struct {
	svc AdminProvider
	log *logrus.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc AdminProvider, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

// Reset handles POST /api/v1/admin/reset: wipes and rebuilds the graph
// from the embeddings source.
func (h *AdminHandler) Reset(c *gin.Context) {
	result, err := h.svc.Reset(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("resetting graph")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Fix handles POST /api/v1/admin/fix: removes nodes whose image file is
// missing from disk.
func (h *AdminHandler) Fix(c *gin.Context) {
	result, err := h.svc.Fix(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("fixing graph")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, result)
}
