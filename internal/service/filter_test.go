package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

func filterFixture() []models.StudentRecord {
	full := fillFields(len(models.TrackedFields))
	full.NamaLengkap = "Siti Rahayu"
	full.NISN = "0052222222"
	full.TanggalRegistrasi = "2026-03-10"
	full.StatusValidasi = models.StatusValid

	return []models.StudentRecord{
		{
			NamaLengkap:       "Budi Santoso",
			NISN:              "0051111111",
			TanggalRegistrasi: "2026-01-05",
			StatusValidasi:    models.StatusBelumDiverifikasi,
		},
		*full,
		{
			NamaLengkap:       "Agus Wijaya",
			NISN:              "0053333333",
			TanggalRegistrasi: "2026-02-20",
			StatusValidasi:    models.StatusResidu,
		},
	}
}

func TestFilterStudentsNoCriteria(t *testing.T) {
	records := filterFixture()
	assert.Len(t, FilterStudents(records, models.StudentFilter{}), 3)
}

func TestFilterStudentsSearchMatchesNameAndNISN(t *testing.T) {
	records := filterFixture()

	byName := FilterStudents(records, models.StudentFilter{Search: "budi"})
	assert.Len(t, byName, 1)
	assert.Equal(t, "Budi Santoso", byName[0].NamaLengkap)

	byNISN := FilterStudents(records, models.StudentFilter{Search: "0053"})
	assert.Len(t, byNISN, 1)
	assert.Equal(t, "Agus Wijaya", byNISN[0].NamaLengkap)
}

func TestFilterStudentsStatusBuckets(t *testing.T) {
	records := filterFixture()

	assert.Len(t, FilterStudents(records, models.StudentFilter{Status: models.BucketValid}), 1)
	assert.Len(t, FilterStudents(records, models.StudentFilter{Status: models.BucketResidu}), 1)
	assert.Len(t, FilterStudents(records, models.StudentFilter{Status: models.BucketSemuaStatus}), 3)

	// Records with an empty status belong in the unverified bucket.
	records = append(records, models.StudentRecord{NamaLengkap: "Tanpa Status"})
	assert.Len(t, FilterStudents(records, models.StudentFilter{Status: models.BucketBelum}), 2)
}

func TestFilterStudentsDateRange(t *testing.T) {
	records := filterFixture()

	both := FilterStudents(records, models.StudentFilter{DateFrom: "2026-01-01", DateTo: "2026-02-28"})
	assert.Len(t, both, 2)

	// A from-only range keeps the upper end open.
	fromOnly := FilterStudents(records, models.StudentFilter{DateFrom: "2026-02-01"})
	assert.Len(t, fromOnly, 2)

	// Bounds are inclusive.
	exact := FilterStudents(records, models.StudentFilter{DateFrom: "2026-02-20", DateTo: "2026-02-20"})
	assert.Len(t, exact, 1)
	assert.Equal(t, "Agus Wijaya", exact[0].NamaLengkap)

	// Records without a registration date never match a dated filter.
	records = append(records, models.StudentRecord{NamaLengkap: "Tanpa Tanggal"})
	assert.Len(t, FilterStudents(records, models.StudentFilter{DateFrom: "2000-01-01"}), 3)
}

func TestFilterStudentsKelengkapan(t *testing.T) {
	records := filterFixture()

	lengkap := FilterStudents(records, models.StudentFilter{Kelengkapan: models.KelengkapanLengkap})
	assert.Len(t, lengkap, 1)
	assert.Equal(t, "Siti Rahayu", lengkap[0].NamaLengkap)

	kurang := FilterStudents(records, models.StudentFilter{Kelengkapan: models.KelengkapanKurang})
	assert.Len(t, kurang, 2)

	assert.Len(t, FilterStudents(records, models.StudentFilter{Kelengkapan: models.KelengkapanSemua}), 3)
}

func TestFilterStudentsCriteriaAreConjunctive(t *testing.T) {
	records := filterFixture()
	out := FilterStudents(records, models.StudentFilter{
		Search:   "a",
		Status:   models.BucketResidu,
		DateFrom: "2026-02-01",
	})
	assert.Len(t, out, 1)
	assert.Equal(t, "Agus Wijaya", out[0].NamaLengkap)

	none := FilterStudents(records, models.StudentFilter{
		Search: "budi",
		Status: models.BucketValid,
	})
	assert.Empty(t, none)
}

func TestFilterStudentsIsIdempotent(t *testing.T) {
	records := filterFixture()
	criteria := []models.StudentFilter{
		{},
		{Search: "a"},
		{Status: models.BucketBelum},
		{DateFrom: "2026-02-01", DateTo: "2026-03-31"},
		{Kelengkapan: models.KelengkapanKurang},
		{Search: "a", Status: models.BucketResidu, DateFrom: "2026-02-01"},
	}
	for _, filter := range criteria {
		once := FilterStudents(records, filter)
		twice := FilterStudents(once, filter)
		assert.Equal(t, once, twice)
	}
}
