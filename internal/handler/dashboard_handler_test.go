package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-admin-api/internal/dto"
	"github.com/sekolahku/siswa-admin-api/internal/middleware"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
	"github.com/sekolahku/siswa-admin-api/pkg/response"
)

type dashboardProviderMock struct {
	stats   *dto.StatsResponse
	reports *dto.ReportsResponse
	cached  bool
	err     error
}

func (m *dashboardProviderMock) Stats(ctx context.Context) (*dto.StatsResponse, bool, error) {
	return m.stats, m.cached, m.err
}

func (m *dashboardProviderMock) Reports(ctx context.Context) (*dto.ReportsResponse, bool, error) {
	return m.reports, m.cached, m.err
}

func newDashboardRouter(provider dashboardProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	h := NewDashboardHandler(provider)
	r.GET("/dashboard/stats", h.Stats)
	r.GET("/dashboard/reports", h.Reports)
	return r
}

func TestDashboardHandlerStats(t *testing.T) {
	provider := &dashboardProviderMock{stats: &dto.StatsResponse{Total: 42, Valid: 30}, cached: true}
	router := newDashboardRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	payload, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), payload["total"])
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestDashboardHandlerReports(t *testing.T) {
	provider := &dashboardProviderMock{reports: &dto.ReportsResponse{
		Kecamatan: []dto.NameTotal{{Name: "Cibinong", Total: 3}},
	}}
	router := newDashboardRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/reports", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cibinong")
}

func TestDashboardHandlerError(t *testing.T) {
	provider := &dashboardProviderMock{err: appErrors.ErrInternal}
	router := newDashboardRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
