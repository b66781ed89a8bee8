package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"prdash/internal/app/dto"
	"prdash/internal/domain/dataset"
	"prdash/internal/domain/view"
	"prdash/internal/infrastructure/render"
)

func (h *Handler) ChartPerUser(c *gin.Context) {
	h.chartJSON(c, view.ModePerUser)
}

func (h *Handler) ChartYearComparison(c *gin.Context) {
	h.chartJSON(c, view.ModeYearOverYear)
}

func (h *Handler) ChartReviewActivity(c *gin.Context) {
	h.chartJSON(c, view.ModeReviewActivity)
}

func (h *Handler) ChartPerUserPNG(c *gin.Context) {
	h.chartPNG(c, view.ModePerUser)
}

func (h *Handler) ChartYearComparisonPNG(c *gin.Context) {
	h.chartPNG(c, view.ModeYearOverYear)
}

func (h *Handler) ChartReviewActivityPNG(c *gin.Context) {
	h.chartPNG(c, view.ModeReviewActivity)
}

func (h *Handler) chartJSON(c *gin.Context, mode view.Mode) {
	sel, err := parseSelection(c, mode)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	if sel.Bucket == "" {
		sel.Bucket = h.DefaultBucket
	}

	res, err := h.ViewSvc.Compose(c.Request.Context(), sel)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.ChartResponse{
		Title:  res.Title,
		Mode:   string(res.Mode),
		Bucket: string(sel.Bucket),
		Series: make([]dto.SeriesPoint, 0, len(res.Series)),
		Frames: make([]dto.FramePoint, 0, len(res.Frames)),
	}
	for _, p := range res.Series {
		resp.Series = append(resp.Series, dto.SeriesPoint{Label: p.Label, Value: p.Value})
	}
	for _, f := range res.Frames {
		resp.Frames = append(resp.Frames, dto.FramePoint{
			Bucket:     f.Bucket,
			Label:      f.Label,
			Value:      f.Value,
			Cumulative: f.Cumulative,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) chartPNG(c *gin.Context, mode view.Mode) {
	sel, err := parseSelection(c, mode)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	if sel.Bucket == "" {
		sel.Bucket = h.DefaultBucket
	}

	res, err := h.ViewSvc.Compose(c.Request.Context(), sel)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var png []byte
	if mode == view.ModeYearOverYear {
		png, err = h.Renderer.Lines(res.Title, sel.Bucket, res.Frames)
	} else {
		png, err = h.Renderer.Bars(res.Title, res.Series)
	}
	if errors.Is(err, render.ErrEmpty) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// parseSelection reads the chart query parameters shared by every chart
// endpoint. Unknown values are left for the composer to judge; only
// malformed numbers are rejected here.
func parseSelection(c *gin.Context, mode view.Mode) (view.Selection, error) {
	sel := view.Selection{
		Mode:   mode,
		Metric: view.Metric(c.Query("metric")),
		Bucket: view.Bucket(c.Query("bucket")),
	}

	for _, raw := range strings.Split(c.Query("sources"), ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			sel.Sources = append(sel.Sources, dataset.Source(raw))
		}
	}

	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return view.Selection{}, fmt.Errorf("year must be an integer, got %q", raw)
		}
		sel.Year = y
	}

	for _, raw := range strings.Split(c.Query("users"), ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			sel.Authors = append(sel.Authors, raw)
		}
	}

	if raw := c.Query("years"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			y, err := strconv.Atoi(part)
			if err != nil {
				return view.Selection{}, fmt.Errorf("years must be integers, got %q", part)
			}
			sel.Years = append(sel.Years, y)
		}
	}

	return sel, nil
}
