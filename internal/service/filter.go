package service

import (
	"strings"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

// FilterStudents returns the subset of records satisfying every
// criterion in the filter. The input collection is never mutated; the
// result is a fresh slice re-derivable from the same inputs.
func FilterStudents(records []models.StudentRecord, f models.StudentFilter) []models.StudentRecord {
	out := make([]models.StudentRecord, 0, len(records))
	term := strings.ToLower(strings.TrimSpace(f.Search))
	for _, r := range records {
		if !matchesSearch(&r, term) {
			continue
		}
		if !matchesStatus(&r, f.Status) {
			continue
		}
		if !matchesDateRange(&r, f.DateFrom, f.DateTo) {
			continue
		}
		if !matchesKelengkapan(&r, f.Kelengkapan) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r *models.StudentRecord, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.NamaLengkap), term) ||
		strings.Contains(strings.ToLower(r.NISN), term)
}

func matchesStatus(r *models.StudentRecord, bucket models.StatusBucket) bool {
	switch bucket {
	case "", models.BucketSemuaStatus:
		return true
	case models.BucketValid:
		return r.StatusValidasi == models.StatusValid
	case models.BucketResidu:
		return r.StatusValidasi == models.StatusResidu
	case models.BucketBelum:
		// Records that never went through verification may carry an
		// empty status; they belong in the unverified bucket.
		return r.StatusValidasi != models.StatusValid && r.StatusValidasi != models.StatusResidu
	}
	return false
}

// matchesDateRange compares yyyy-MM-dd strings; ISO dates order
// lexicographically so no parsing is needed. A from-only range is a
// lower bound with an open upper end.
func matchesDateRange(r *models.StudentRecord, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	date := r.TanggalRegistrasi
	if date == "" {
		return false
	}
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

func matchesKelengkapan(r *models.StudentRecord, bucket models.CompletenessBucket) bool {
	if bucket == "" || bucket == models.KelengkapanSemua {
		return true
	}
	return CompletenessBucketFor(Completeness(r)) == bucket
}
