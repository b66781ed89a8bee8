package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prdash/internal/domain/dataset"
	"prdash/internal/domain/view"
	"prdash/internal/infrastructure/render"
)

type Handler struct {
	DatasetSvc dataset.Service
	ViewSvc    view.Service
	Renderer   *render.Renderer
	Log        *zap.Logger

	// DefaultBucket applies when a chart request does not name a bucket
	// granularity.
	DefaultBucket view.Bucket
}

func New(
	datasetSvc dataset.Service,
	viewSvc view.Service,
	renderer *render.Renderer,
	log *zap.Logger,
) *Handler {
	return &Handler{
		DatasetSvc: datasetSvc,
		ViewSvc:    viewSvc,
		Renderer:   renderer,
		Log:        log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
