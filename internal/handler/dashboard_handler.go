package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/siswa-admin-api/internal/dto"
	"github.com/sekolahku/siswa-admin-api/internal/middleware"
	"github.com/sekolahku/siswa-admin-api/pkg/response"
)

type dashboardProvider interface {
	Stats(ctx context.Context) (*dto.StatsResponse, bool, error)
	Reports(ctx context.Context) (*dto.ReportsResponse, bool, error)
}

// DashboardHandler exposes the stats and reports dashboards.
type DashboardHandler struct {
	dashboards dashboardProvider
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboards dashboardProvider) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Stats godoc
// @Summary Overview dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, cached, err := h.dashboards.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}

// Reports godoc
// @Summary Reports dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/reports [get]
func (h *DashboardHandler) Reports(c *gin.Context) {
	reports, cached, err := h.dashboards.Reports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, reports, nil, middleware.ExtractMeta(c))
}
