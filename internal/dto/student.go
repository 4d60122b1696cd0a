package dto

import "github.com/sekolahku/siswa-admin-api/internal/models"

// StudentListItem enriches a record with its computed completeness for
// list and detail payloads.
type StudentListItem struct {
	models.StudentRecord
	Kelengkapan         float64                   `json:"kelengkapan"`
	KategoriKelengkapan models.CompletenessBucket `json:"kategoriKelengkapan"`
}

// SaveStudentRequest carries the full registration form for create and
// update. Field names follow the form schema.
type SaveStudentRequest struct {
	models.StudentRecord
}

// UpdateStatusRequest changes the validation state of one record.
type UpdateStatusRequest struct {
	Status  models.ValidationStatus `json:"statusValidasi" validate:"required"`
	Catatan string                  `json:"catatanValidasi"`
}

// BulkStatusRequest applies one validation state to many records.
type BulkStatusRequest struct {
	IDs     []string                `json:"ids" validate:"required,min=1,dive,required"`
	Status  models.ValidationStatus `json:"statusValidasi" validate:"required"`
	Catatan string                  `json:"catatanValidasi"`
}

// BulkDeleteRequest removes many records at once.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// ImportResponse summarises a reconciled spreadsheet import.
type ImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}
