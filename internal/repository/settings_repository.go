package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

// SettingsRepository persists the single print-settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get fetches the print settings. sql.ErrNoRows is passed through when
// nothing has been configured yet.
func (r *SettingsRepository) Get(ctx context.Context) (*models.PrintSettings, error) {
	const query = `SELECT id, school_letterhead_url, academic_year, signature_place,
       committee_head_title, committee_head_name, committee_head_nuptk,
       committee_head_nip, committee_head_npa, updated_by, updated_at
FROM print_settings WHERE id = $1`
	var settings models.PrintSettings
	if err := r.db.GetContext(ctx, &settings, query, models.PrintSettingsID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert inserts or replaces the print settings row.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.PrintSettings) error {
	const query = `INSERT INTO print_settings (id, school_letterhead_url, academic_year, signature_place,
       committee_head_title, committee_head_name, committee_head_nuptk,
       committee_head_nip, committee_head_npa, updated_by, updated_at)
VALUES (:id, :school_letterhead_url, :academic_year, :signature_place,
        :committee_head_title, :committee_head_name, :committee_head_nuptk,
        :committee_head_nip, :committee_head_npa, :updated_by, :updated_at)
ON CONFLICT (id)
DO UPDATE SET school_letterhead_url = EXCLUDED.school_letterhead_url,
              academic_year = EXCLUDED.academic_year,
              signature_place = EXCLUDED.signature_place,
              committee_head_title = EXCLUDED.committee_head_title,
              committee_head_name = EXCLUDED.committee_head_name,
              committee_head_nuptk = EXCLUDED.committee_head_nuptk,
              committee_head_nip = EXCLUDED.committee_head_nip,
              committee_head_npa = EXCLUDED.committee_head_npa,
              updated_by = EXCLUDED.updated_by,
              updated_at = EXCLUDED.updated_at`
	settings.ID = models.PrintSettingsID
	settings.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("upsert print settings: %w", err)
	}
	return nil
}
