package service

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

// fillFields fills the first n tracked fields of a fresh record.
func fillFields(n int) *models.StudentRecord {
	record := &models.StudentRecord{}
	for i := 0; i < n && i < len(models.TrackedFields); i++ {
		name := models.TrackedFields[i]
		if ptr, ok := record.ScalarField(name); ok {
			*ptr = "x"
			continue
		}
		if ptr, ok := record.SetField(name); ok {
			*ptr = pq.StringArray{"x"}
		}
	}
	return record
}

func TestCompletenessEmptyRecord(t *testing.T) {
	assert.Equal(t, 0.0, Completeness(&models.StudentRecord{}))
}

func TestCompletenessFullRecord(t *testing.T) {
	record := fillFields(len(models.TrackedFields))
	assert.Equal(t, 100.0, Completeness(record))
}

func TestCompletenessPartialRecord(t *testing.T) {
	record := &models.StudentRecord{NamaLengkap: "Budi", NISN: "0051234567"}
	assert.InDelta(t, 2.0/float64(len(models.TrackedFields))*100, Completeness(record), 0.001)
	assert.Equal(t, models.KelengkapanKurang, CompletenessBucketFor(Completeness(record)))
}

func TestCompletenessIgnoresSystemFields(t *testing.T) {
	note := "catatan"
	record := &models.StudentRecord{
		TanggalRegistrasi: "2026-01-15",
		StatusValidasi:    models.StatusResidu,
		CatatanValidasi:   &note,
	}
	assert.Equal(t, 0.0, Completeness(record))
}

func TestCompletenessCountsSetFieldsOnlyWhenNonEmpty(t *testing.T) {
	record := &models.StudentRecord{BerkebutuhanKhusus: pq.StringArray{}}
	assert.Equal(t, 0.0, Completeness(record))

	record.BerkebutuhanKhusus = pq.StringArray{"Netra"}
	assert.InDelta(t, 1.0/float64(len(models.TrackedFields))*100, Completeness(record), 0.001)
}

func TestCompletenessBucketBoundaries(t *testing.T) {
	cases := []struct {
		score  float64
		bucket models.CompletenessBucket
	}{
		{100, models.KelengkapanLengkap},
		{80.1, models.KelengkapanLengkap},
		{80, models.KelengkapanCukup},
		{50, models.KelengkapanCukup},
		{49.9, models.KelengkapanKurang},
		{0, models.KelengkapanKurang},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.bucket, CompletenessBucketFor(tc.score), "score %.1f", tc.score)
	}
}
