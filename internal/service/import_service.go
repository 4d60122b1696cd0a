package service

import (
	"context"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
)

type importStore interface {
	ListAll(ctx context.Context) ([]models.StudentRecord, error)
	BatchWrite(ctx context.Context, ops []models.BatchOperation) error
}

// ImportService reconciles spreadsheet rows against the existing
// collection: rows matching an existing NISN become field-level merge
// updates, the rest become creates with system defaults.
type ImportService struct {
	repo    importStore
	cache   cacheInvalidator
	audit   auditRecorder
	maxRows int
	logger  *zap.Logger
	now     func() time.Time
}

// NewImportService constructs the import service. Cache and audit are
// optional; maxRows <= 0 disables the row limit.
func NewImportService(repo importStore, cache cacheInvalidator, audit auditRecorder, maxRows int, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{repo: repo, cache: cache, audit: audit, maxRows: maxRows, logger: logger, now: time.Now}
}

// Import merges the parsed rows into the record set and writes every
// resulting create and update as one atomic batch. On any persistence
// failure the whole import is rejected with nothing applied.
func (s *ImportService) Import(ctx context.Context, rows []models.ImportRow, actorID string) (*models.ImportSummary, error) {
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file tidak berisi data siswa")
	}
	if s.maxRows > 0 && len(rows) > s.maxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation, "jumlah baris melebihi batas impor")
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	// Lookup over the pre-import collection. Records share the fetch
	// order of ListAll; on duplicate NISN the later record wins.
	byNISN := make(map[string]*models.StudentRecord, len(records))
	for i := range records {
		if nisn := strings.TrimSpace(records[i].NISN); nisn != "" {
			byNISN[nisn] = &records[i]
		}
	}

	// Rows hitting the same record compound into one pending update.
	pending := make(map[string]*models.StudentRecord)
	var ops []models.BatchOperation
	summary := &models.ImportSummary{}
	importDate := s.now().Format("2006-01-02")

	for _, row := range rows {
		nisn := strings.TrimSpace(row["nisn"])
		if existing, ok := byNISN[nisn]; ok && nisn != "" {
			target, seen := pending[existing.ID]
			if !seen {
				clone := *existing
				target = &clone
				pending[existing.ID] = target
				ops = append(ops, models.BatchOperation{Kind: models.BatchOpUpdate, ID: existing.ID, Record: target})
				summary.Updated++
			}
			mergeRow(target, row)
			continue
		}

		record := &models.StudentRecord{
			TanggalRegistrasi: importDate,
			StatusValidasi:    models.StatusBelumDiverifikasi,
		}
		mergeRow(record, row)
		record.Normalize()
		ops = append(ops, models.BatchOperation{Kind: models.BatchOpCreate, Record: record})
		summary.Created++
	}

	if err := s.repo.BatchWrite(ctx, ops); err != nil {
		s.logger.Warn("import batch rejected", zap.Int("rows", len(rows)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrImportRejected.Code, appErrors.ErrImportRejected.Status, appErrors.ErrImportRejected.Message)
	}

	s.invalidate(ctx)
	s.recordAudit(ctx, actorID)
	return summary, nil
}

// mergeRow copies every field present in the row onto the record.
// Absent fields never overwrite; keys outside the form schema are
// ignored.
func mergeRow(record *models.StudentRecord, row models.ImportRow) {
	for key, value := range row {
		if ptr, ok := record.ScalarField(key); ok {
			*ptr = strings.TrimSpace(value)
			continue
		}
		if ptr, ok := record.SetField(key); ok {
			*ptr = splitSetValue(value)
		}
	}
}

// splitSetValue parses a comma separated cell into a set value.
func splitSetValue(value string) pq.StringArray {
	parts := strings.Split(value, ",")
	out := make(pq.StringArray, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *ImportService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *ImportService) recordAudit(ctx context.Context, actorID string) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{Action: models.AuditActionStudentImport, Resource: "students"}
	if actorID != "" {
		log.UserID = &actorID
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to write audit log", zap.Error(err))
	}
}
