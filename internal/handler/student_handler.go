package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sekolahku/siswa-admin-api/internal/dto"
	"github.com/sekolahku/siswa-admin-api/internal/models"
	"github.com/sekolahku/siswa-admin-api/internal/service"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
	"github.com/sekolahku/siswa-admin-api/pkg/importer"
	"github.com/sekolahku/siswa-admin-api/pkg/response"
)

// UploadArchiver keeps a copy of imported workbooks for traceability.
type UploadArchiver interface {
	Store(originalName string, r io.Reader) (string, error)
}

// StudentHandler exposes the student record endpoints.
type StudentHandler struct {
	students    *service.StudentService
	imports     *service.ImportService
	exports     *service.ExportService
	archive     UploadArchiver
	maxFileSize int64
	logger      *zap.Logger
}

// NewStudentHandler constructs StudentHandler. maxFileSize bounds the
// accepted import upload in bytes; <= 0 disables the limit. archive may be
// nil, in which case uploads are not retained.
func NewStudentHandler(students *service.StudentService, imports *service.ImportService, exports *service.ExportService, archive UploadArchiver, maxFileSize int64, logger *zap.Logger) *StudentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentHandler{students: students, imports: imports, exports: exports, archive: archive, maxFileSize: maxFileSize, logger: logger}
}

func filterFromQuery(c *gin.Context) models.StudentFilter {
	filter := models.StudentFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = models.StatusBucket(status)
	}
	if bucket := c.Query("kelengkapan"); bucket != "" {
		filter.Kelengkapan = models.CompletenessBucket(bucket)
	}
	return filter
}

// List godoc
// @Summary List student records
// @Tags Students
// @Produce json
// @Param search query string false "Search by name or NISN"
// @Param status query string false "Status bucket: semua/belum/valid/residu"
// @Param dateFrom query string false "Registration date from (yyyy-MM-dd)"
// @Param dateTo query string false "Registration date to (yyyy-MM-dd)"
// @Param kelengkapan query string false "Completeness bucket: Semua/Lengkap/Cukup/Kurang"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := filterFromQuery(c)
	if filter.Status != "" && !filter.Status.Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status filter tidak dikenal"))
		return
	}
	if filter.Kelengkapan != "" && !filter.Kelengkapan.Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filter kelengkapan tidak dikenal"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, pagination, err := h.students.List(c.Request.Context(), filter, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get one student record
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	item, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Register a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.SaveStudentRequest true "Registration form"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.SaveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.students.Create(c.Request.Context(), req, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a student record
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.SaveStudentRequest true "Registration form"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.SaveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.students.Update(c.Request.Context(), c.Param("id"), req, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// UpdateStatus godoc
// @Summary Change validation status
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.UpdateStatusRequest true "Target status and note"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/status [patch]
func (h *StudentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.students.UpdateStatus(c.Request.Context(), c.Param("id"), req, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete a student record
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id"), actorIDFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkStatus godoc
// @Summary Change validation status for many records
// @Tags Students
// @Accept json
// @Param payload body dto.BulkStatusRequest true "IDs, target status and note"
// @Success 200 {object} response.Envelope
// @Router /students/bulk/status [post]
func (h *StudentHandler) BulkStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.students.BulkUpdateStatus(c.Request.Context(), req, actorIDFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": len(req.IDs)}, nil)
}

// BulkDelete godoc
// @Summary Delete many student records
// @Tags Students
// @Accept json
// @Param payload body dto.BulkDeleteRequest true "IDs to delete"
// @Success 200 {object} response.Envelope
// @Router /students/bulk/delete [post]
func (h *StudentHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.students.BulkDelete(c.Request.Context(), req, actorIDFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": len(req.IDs)}, nil)
}

// Import godoc
// @Summary Import students from a workbook
// @Tags Students
// @Accept mpfd
// @Produce json
// @Param file formData file true "XLSX file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/import [post]
func (h *StudentHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file wajib diunggah"))
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "ukuran file melebihi batas"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file tidak dapat dibaca"))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file tidak dapat dibaca"))
		return
	}
	if h.archive != nil {
		if _, err := h.archive.Store(fileHeader.Filename, bytes.NewReader(raw)); err != nil {
			h.logger.Warn("failed to archive uploaded workbook", zap.String("filename", fileHeader.Filename), zap.Error(err))
		}
	}

	rows, err := importer.ParseXLSX(bytes.NewReader(raw))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrImportRejected.Code, appErrors.ErrImportRejected.Status, appErrors.ErrImportRejected.Message))
		return
	}

	summary, err := h.imports.Import(c.Request.Context(), rows, actorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ImportResponse{
		Created: summary.Created,
		Updated: summary.Updated,
		Total:   summary.Created + summary.Updated,
	}, nil)
}

// Export godoc
// @Summary Export students
// @Tags Students
// @Produce octet-stream
// @Param format query string true "csv, xlsx or pdf"
// @Param ids query string false "Comma separated record ids; overrides the filter"
// @Success 200 {file} binary
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	var ids []string
	if raw := c.Query("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
	}
	file, err := h.exports.ExportStudents(c.Request.Context(), filterFromQuery(c), ids, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// ImportTemplate godoc
// @Summary Download the import template
// @Tags Students
// @Produce octet-stream
// @Success 200 {file} binary
// @Router /students/import/template [get]
func (h *StudentHandler) ImportTemplate(c *gin.Context) {
	file, err := h.exports.ImportTemplate()
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// ProfilePDF godoc
// @Summary Download a printable student profile
// @Tags Students
// @Produce octet-stream
// @Param id path string true "Student ID"
// @Success 200 {file} binary
// @Router /students/{id}/profile [get]
func (h *StudentHandler) ProfilePDF(c *gin.Context) {
	file, err := h.exports.ProfilePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

func serveFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
