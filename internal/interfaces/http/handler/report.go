package handler

import (
	"github.com/gipsy-office/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles sales reporting endpoints
type ReportHandler struct {
	BaseHandler
	service *report.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes under the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/reports")
	{
		group.GET("/summary", h.Summary)
	}
}

// Summary returns the per-product and per-ingredient sales summary for a
// date range. Defaults to today.
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid date range: "+err.Error())
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
