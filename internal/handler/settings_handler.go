package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/siswa-admin-api/internal/dto"
	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
	"github.com/sekolahku/siswa-admin-api/pkg/response"
)

type settingsManager interface {
	Get(ctx context.Context) (*models.PrintSettings, error)
	Update(ctx context.Context, req dto.SavePrintSettingsRequest, actorID string) (*models.PrintSettings, error)
}

// SettingsHandler exposes the print settings endpoints.
type SettingsHandler struct {
	settings settingsManager
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(settings settingsManager) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary Print settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/print [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Update print settings (admin)
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.SavePrintSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings/print [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SavePrintSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), req, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
