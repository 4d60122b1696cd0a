package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sekolahku/siswa-admin-api/internal/dto"
	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
)

type studentStore interface {
	ListAll(ctx context.Context) ([]models.StudentRecord, error)
	FindByID(ctx context.Context, id string) (*models.StudentRecord, error)
	Insert(ctx context.Context, student *models.StudentRecord) error
	Update(ctx context.Context, student *models.StudentRecord) error
	UpdateStatus(ctx context.Context, id string, status models.ValidationStatus, catatan *string) error
	Delete(ctx context.Context, id string) error
	BatchWrite(ctx context.Context, ops []models.BatchOperation) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// dashboardCachePattern matches every cached dashboard payload; any
// mutation of student data invalidates all of them.
const dashboardCachePattern = "dash:*"

// StudentService implements the record listing, editing, validation and
// bulk flows of the portal.
type StudentService struct {
	repo      studentStore
	cache     cacheInvalidator
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service. Cache and audit are
// optional.
func NewStudentService(repo studentStore, cache cacheInvalidator, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, audit: audit, validator: validate, logger: logger}
}

// List loads the current dataset, applies the filter criteria and pages
// the result. Completeness is computed per record on the way out.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter, page, pageSize int) ([]dto.StudentListItem, *models.Pagination, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	filtered := FilterStudents(records, filter)

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	total := len(filtered)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]dto.StudentListItem, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, decorate(filtered[i]))
	}
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}
	return items, pagination, nil
}

// Get returns one record with its completeness.
func (s *StudentService) Get(ctx context.Context, id string) (*dto.StudentListItem, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "data siswa tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	item := decorate(*record)
	return &item, nil
}

// Create registers a new record from the full form payload. A missing
// registration date defaults to today and the validation state starts
// at Belum Diverifikasi.
func (s *StudentService) Create(ctx context.Context, req dto.SaveStudentRequest, actorID string) (*dto.StudentListItem, error) {
	record := req.StudentRecord
	if strings.TrimSpace(record.NamaLengkap) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nama lengkap wajib diisi")
	}
	if record.TanggalRegistrasi == "" {
		record.TanggalRegistrasi = time.Now().Format("2006-01-02")
	}
	record.StatusValidasi = models.StatusBelumDiverifikasi
	record.CatatanValidasi = nil
	record.Normalize()

	if err := s.repo.Insert(ctx, &record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.invalidateDashboards(ctx)
	s.record(ctx, actorID, models.AuditActionStudentCreate, record.ID)

	item := decorate(record)
	return &item, nil
}

// Update replaces the form fields of an existing record.
func (s *StudentService) Update(ctx context.Context, id string, req dto.SaveStudentRequest, actorID string) (*dto.StudentListItem, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "data siswa tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if strings.TrimSpace(req.NamaLengkap) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nama lengkap wajib diisi")
	}

	record := req.StudentRecord
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if record.TanggalRegistrasi == "" {
		record.TanggalRegistrasi = existing.TanggalRegistrasi
	}
	record.Normalize()

	if err := s.repo.Update(ctx, &record); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "data siswa tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.invalidateDashboards(ctx)
	s.record(ctx, actorID, models.AuditActionStudentUpdate, record.ID)

	item := decorate(record)
	return &item, nil
}

// UpdateStatus moves one record to the target validation state. The
// returned item reflects the transition without a re-read; the write
// and the response are built from the same in-memory record.
func (s *StudentService) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest, actorID string) (*dto.StudentListItem, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "data siswa tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := ApplyTransition(record, req.Status, req.Catatan); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, record.StatusValidasi, record.CatatanValidasi); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	s.invalidateDashboards(ctx)
	s.record(ctx, actorID, models.AuditActionStudentStatus, id)

	item := decorate(*record)
	return &item, nil
}

// Delete removes one record permanently.
func (s *StudentService) Delete(ctx context.Context, id string, actorID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "data siswa tidak ditemukan")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.invalidateDashboards(ctx)
	s.record(ctx, actorID, models.AuditActionStudentDelete, id)
	return nil
}

// BulkUpdateStatus applies one validation state to every listed record
// in a single atomic batch. Either all rows change or none do.
func (s *StudentService) BulkUpdateStatus(ctx context.Context, req dto.BulkStatusRequest, actorID string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk status payload")
	}
	if !req.Status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "status validasi tidak dikenal")
	}
	var catatan *string
	if req.Status == models.StatusResidu && req.Catatan != "" {
		note := req.Catatan
		catatan = &note
	}
	ops := make([]models.BatchOperation, 0, len(req.IDs))
	for _, id := range req.IDs {
		ops = append(ops, models.BatchOperation{Kind: models.BatchOpStatus, ID: id, Status: req.Status, Catatan: catatan})
	}
	if err := s.repo.BatchWrite(ctx, ops); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update statuses")
	}
	s.invalidateDashboards(ctx)
	s.record(ctx, actorID, models.AuditActionBulkStatus, "")
	return nil
}

// BulkDelete removes every listed record in a single atomic batch.
func (s *StudentService) BulkDelete(ctx context.Context, req dto.BulkDeleteRequest, actorID string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk delete payload")
	}
	ops := make([]models.BatchOperation, 0, len(req.IDs))
	for _, id := range req.IDs {
		ops = append(ops, models.BatchOperation{Kind: models.BatchOpDelete, ID: id})
	}
	if err := s.repo.BatchWrite(ctx, ops); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete students")
	}
	s.invalidateDashboards(ctx)
	s.record(ctx, actorID, models.AuditActionBulkDelete, "")
	return nil
}

func (s *StudentService) invalidateDashboards(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *StudentService) record(ctx context.Context, actorID, action, resourceID string) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{Action: action, Resource: "students"}
	if actorID != "" {
		log.UserID = &actorID
	}
	if resourceID != "" {
		log.ResourceID = &resourceID
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

func decorate(record models.StudentRecord) dto.StudentListItem {
	score := Completeness(&record)
	return dto.StudentListItem{
		StudentRecord:       record,
		Kelengkapan:         score,
		KategoriKelengkapan: CompletenessBucketFor(score),
	}
}
