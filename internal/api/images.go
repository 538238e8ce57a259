package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/imagedir"
	"github.com/simgraphai/simgraph/internal/models"
)

// ImageHandler serves the image listing and static file endpoints.
type ImageHandler struct {
	images ImageProvider
	admin  AdminProvider
	log    *logrus.Logger
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(images ImageProvider, admin AdminProvider, log *logrus.Logger) *ImageHandler {
	return &ImageHandler{images: images, admin: admin, log: log}
}

// List handles GET /api/v1/images: the filenames available on disk.
func (h *ImageHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"images": h.images.List()})
}

// Sync handles GET /api/v1/images/sync: reports drift between the graph
// store and the image directory without changing either.
func (h *ImageHandler) Sync(c *gin.Context) {
	result, err := h.admin.Sync(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("syncing image state")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Static handles GET /static/:filename: serves the image file, or a gray
// placeholder when the file is missing so the viewer never renders a broken
// tile.
func (h *ImageHandler) Static(c *gin.Context) {
	name := models.NormalizePath(c.Param("filename"))

	actual, ok := h.images.Resolve(name)
	if !ok {
		h.servePlaceholder(c)

		return
	}

	// Images are immutable once ingested; let browsers cache them.
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filepath.Join(h.images.Dir(), actual))
}

func (h *ImageHandler) servePlaceholder(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", imagedir.Placeholder())
}
