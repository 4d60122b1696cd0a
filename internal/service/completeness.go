package service

import (
	"github.com/sekolahku/siswa-admin-api/internal/models"
)

// Completeness scores how much of the registration form is filled,
// as a percentage of the canonical tracked fields. Pure and O(N).
func Completeness(r *models.StudentRecord) float64 {
	filled := 0
	for _, name := range models.TrackedFields {
		if r.FieldFilled(name) {
			filled++
		}
	}
	return float64(filled) / float64(len(models.TrackedFields)) * 100
}

// CompletenessBucketFor maps a score onto the portal's grouping.
// Exactly 80 is still Cukup; Lengkap requires strictly more than 80.
func CompletenessBucketFor(score float64) models.CompletenessBucket {
	switch {
	case score > 80:
		return models.KelengkapanLengkap
	case score >= 50:
		return models.KelengkapanCukup
	default:
		return models.KelengkapanKurang
	}
}
