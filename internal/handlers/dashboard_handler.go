package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/dashboard"
)

type DashboardHandler struct {
	summary *dashboard.GetSummary
	stats   *appointment.GetStats
}

func NewDashboardHandler(summary *dashboard.GetSummary, stats *appointment.GetStats) *DashboardHandler {
	return &DashboardHandler{summary: summary, stats: stats}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	s, err := h.summary.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *DashboardHandler) AppointmentStats(c *gin.Context) {
	s, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}
