package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prdash/internal/app/http/handler"
	"prdash/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})

	r.GET("/api/datasets", h.Datasets)
	r.GET("/api/charts/per-user", h.ChartPerUser)
	r.GET("/api/charts/year-comparison", h.ChartYearComparison)
	r.GET("/api/charts/review-activity", h.ChartReviewActivity)

	r.GET("/charts/per-user.png", h.ChartPerUserPNG)
	r.GET("/charts/year-comparison.png", h.ChartYearComparisonPNG)
	r.GET("/charts/review-activity.png", h.ChartReviewActivityPNG)

	return r
}
