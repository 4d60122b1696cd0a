package service

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sekolahku/siswa-admin-api/internal/dto"
	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
)

type settingsStore interface {
	Get(ctx context.Context) (*models.PrintSettings, error)
	Upsert(ctx context.Context, settings *models.PrintSettings) error
}

// SettingsService manages the letterhead and sign-off block used by
// printed profiles.
type SettingsService struct {
	repo      settingsStore
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs the settings service. Audit is optional.
func NewSettingsService(repo settingsStore, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Get returns the stored print settings, or an empty default when none
// have been configured yet.
func (s *SettingsService) Get(ctx context.Context) (*models.PrintSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.PrintSettings{ID: models.PrintSettingsID}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load print settings")
	}
	return settings, nil
}

// Update merges the supplied fields into the stored settings. Absent
// fields keep their value; explicit empty strings clear them.
func (s *SettingsService) Update(ctx context.Context, req dto.SavePrintSettingsRequest, actorID string) (*models.PrintSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "pengaturan cetak tidak valid")
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	mergeSetting(&settings.SchoolLetterheadURL, req.SchoolLetterheadURL)
	mergeSetting(&settings.AcademicYear, req.AcademicYear)
	mergeSetting(&settings.SignaturePlace, req.SignaturePlace)
	mergeSetting(&settings.CommitteeHeadTitle, req.CommitteeHeadTitle)
	mergeSetting(&settings.CommitteeHeadName, req.CommitteeHeadName)
	mergeSetting(&settings.CommitteeHeadNUPTK, req.CommitteeHeadNUPTK)
	mergeSetting(&settings.CommitteeHeadNIP, req.CommitteeHeadNIP)
	mergeSetting(&settings.CommitteeHeadNPA, req.CommitteeHeadNPA)
	if actorID != "" {
		settings.UpdatedBy = &actorID
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save print settings")
	}

	if s.audit != nil {
		log := &models.AuditLog{Action: models.AuditActionSettingsUpdate, Resource: "print_settings"}
		if actorID != "" {
			log.UserID = &actorID
		}
		if err := s.audit.CreateAuditLog(ctx, log); err != nil {
			s.logger.Warn("failed to write audit log", zap.String("action", models.AuditActionSettingsUpdate), zap.Error(err))
		}
	}
	return settings, nil
}

// mergeSetting applies a partial update: nil keeps the stored value,
// empty string clears it.
func mergeSetting(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	*dst = src
}
