package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prdash/internal/app/dto"
)

func (h *Handler) Datasets(c *gin.Context) {
	infos, err := h.DatasetSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.DatasetsResponse{Datasets: make([]dto.DatasetInfo, 0, len(infos))}
	for _, info := range infos {
		resp.Datasets = append(resp.Datasets, dto.DatasetInfo{
			Source:  string(info.Source),
			Label:   info.Label,
			Records: info.Records,
			Years:   info.Years,
		})
	}

	c.JSON(http.StatusOK, resp)
}
