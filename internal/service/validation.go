package service

import (
	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
)

// ApplyTransition moves a record to the target validation state. Every
// state is reachable from every other; the note survives only while the
// record sits in Residu, and an empty note is stored as null.
func ApplyTransition(r *models.StudentRecord, status models.ValidationStatus, catatan string) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "status validasi tidak dikenal")
	}
	r.StatusValidasi = status
	if status == models.StatusResidu && catatan != "" {
		note := catatan
		r.CatatanValidasi = &note
	} else {
		r.CatatanValidasi = nil
	}
	return nil
}
