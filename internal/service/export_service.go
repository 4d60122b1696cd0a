package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
	"github.com/sekolahku/siswa-admin-api/pkg/export"
	"github.com/sekolahku/siswa-admin-api/pkg/importer"
)

type exportStudentRepository interface {
	ListAll(ctx context.Context) ([]models.StudentRecord, error)
	FindByID(ctx context.Context, id string) (*models.StudentRecord, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

type profileRenderer interface {
	Render(header export.ProfileHeader, title, subtitle string, sections []export.ProfileSection, signature export.ProfileSignature) ([]byte, error)
}

type printSettingsReader interface {
	Get(ctx context.Context) (*models.PrintSettings, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the filtered (or explicitly selected) record
// set into downloadable files and produces the import template.
type ExportService struct {
	repo       exportStudentRepository
	settings   printSettingsReader
	csv        csvRenderer
	xlsx       xlsxRenderer
	pdf        pdfRenderer
	profile    profileRenderer
	letterhead func(url string) ([]byte, string, error)
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService constructs an ExportService with default renderers.
// Settings are optional; without them profiles print a plain header.
func NewExportService(repo exportStudentRepository, settings printSettingsReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		repo:       repo,
		settings:   settings,
		csv:        export.NewCSVExporter(),
		xlsx:       export.NewXLSXExporter(),
		pdf:        export.NewPDFExporter(),
		profile:    export.NewProfilePDFExporter(),
		letterhead: fetchLetterhead,
		logger:     logger,
		now:        time.Now,
	}
}

// ExportStudents renders the records matching the filter, or the
// explicitly selected ids, in the requested format. CSV and XLSX carry
// the full form schema; PDF carries the list-view summary columns.
func (s *ExportService) ExportStudents(ctx context.Context, filter models.StudentFilter, ids []string, format string) (*ExportFile, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	if len(ids) > 0 {
		records = selectByID(records, ids)
	} else {
		records = FilterStudents(records, filter)
	}

	stamp := s.now().Format("2006-01-02")
	switch strings.ToLower(format) {
	case "csv":
		payload, err := s.csv.Render(fullDataset(records))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("data-siswa-%s.csv", stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case "xlsx":
		payload, err := s.xlsx.Render(fullDataset(records), "Data Siswa")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render xlsx")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("data-siswa-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Payload:     payload,
		}, nil
	case "pdf":
		payload, err := s.pdf.Render(summaryDataset(records), "Data Siswa")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("data-siswa-%s.pdf", stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format ekspor tidak dikenal")
	}
}

// ImportTemplate renders an empty workbook carrying the import header
// row.
func (s *ExportService) ImportTemplate() (*ExportFile, error) {
	payload, err := s.xlsx.Render(export.Dataset{Headers: importer.TemplateHeaders()}, "Template Impor")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render template")
	}
	return &ExportFile{
		Filename:    "template-impor-siswa.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Payload:     payload,
	}, nil
}

// ProfilePDF renders the printable profile of one record, grouped the
// way the registration form groups its fields.
func (s *ExportService) ProfilePDF(ctx context.Context, id string) (*ExportFile, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "data siswa tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	sections := profileSections(record)
	subtitle := fmt.Sprintf("NISN: %s | Tanggal Registrasi: %s", orDash(record.NISN), orDash(record.TanggalRegistrasi))
	header, signature := s.printDecorations(ctx)
	payload, err := s.profile.Render(header, "PROFIL SISWA", subtitle, sections, signature)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render profile")
	}
	name := strings.ReplaceAll(strings.ToLower(record.NamaLengkap), " ", "-")
	if name == "" {
		name = record.ID
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("profil-%s.pdf", name),
		ContentType: "application/pdf",
		Payload:     payload,
	}, nil
}

// printDecorations assembles the letterhead and sign-off block from the
// stored print settings. Everything here is best effort: a missing row
// or an unreachable letterhead image degrades to a plain document.
func (s *ExportService) printDecorations(ctx context.Context) (export.ProfileHeader, export.ProfileSignature) {
	header := export.ProfileHeader{}
	signature := export.ProfileSignature{Date: indonesianDate(s.now())}
	if s.settings == nil {
		return header, signature
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("print settings unavailable", zap.Error(err))
		}
		return header, signature
	}

	if settings.AcademicYear != nil {
		header.AcademicYear = *settings.AcademicYear
	}
	if settings.SchoolLetterheadURL != nil {
		image, imageType, err := s.letterhead(*settings.SchoolLetterheadURL)
		if err != nil {
			s.logger.Warn("letterhead image unavailable", zap.String("url", *settings.SchoolLetterheadURL), zap.Error(err))
		} else {
			header.Image = image
			header.ImageType = imageType
		}
	}

	if settings.SignaturePlace != nil {
		signature.Place = *settings.SignaturePlace
	}
	if settings.CommitteeHeadTitle != nil {
		signature.Title = *settings.CommitteeHeadTitle
	}
	if settings.CommitteeHeadName != nil {
		signature.Name = *settings.CommitteeHeadName
	}
	for _, id := range []struct {
		label string
		value *string
	}{
		{"NUPTK", settings.CommitteeHeadNUPTK},
		{"NIP", settings.CommitteeHeadNIP},
		{"NPA", settings.CommitteeHeadNPA},
	} {
		if id.value != nil {
			signature.IDs = append(signature.IDs, fmt.Sprintf("%s. %s", id.label, *id.value))
		}
	}
	return header, signature
}

// fetchLetterhead downloads the configured letterhead image.
func fetchLetterhead(url string) ([]byte, string, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("fetch letterhead: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch letterhead: status %d", resp.StatusCode)
	}
	image, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, "", fmt.Errorf("read letterhead: %w", err)
	}
	switch resp.Header.Get("Content-Type") {
	case "image/png":
		return image, "PNG", nil
	case "image/jpeg", "image/jpg":
		return image, "JPG", nil
	case "image/gif":
		return image, "GIF", nil
	default:
		return nil, "", fmt.Errorf("unsupported letterhead content type %q", resp.Header.Get("Content-Type"))
	}
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

func indonesianDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// profileGroups fixes which fields appear under which printed section.
var profileGroups = []struct {
	title string
	from  string
	to    string
}{
	{"Data Pribadi", "namaLengkap", "citaCita"},
	{"Data Ayah Kandung", "namaAyah", "berkebutuhanKhususAyah"},
	{"Data Ibu Kandung", "namaIbu", "berkebutuhanKhususIbu"},
	{"Data Wali", "namaWali", "penghasilanWali"},
	{"Kontak", "nomorTeleponRumah", "email"},
}

func profileSections(record *models.StudentRecord) []export.ProfileSection {
	index := make(map[string]int, len(models.FieldTitles))
	for i, field := range models.FieldTitles {
		index[field.Key] = i
	}
	sections := make([]export.ProfileSection, 0, len(profileGroups))
	for _, group := range profileGroups {
		section := export.ProfileSection{Title: group.title}
		for i := index[group.from]; i <= index[group.to]; i++ {
			field := models.FieldTitles[i]
			section.Rows = append(section.Rows, [2]string{field.Title, orDash(fieldValue(record, field.Key))})
		}
		sections = append(sections, section)
	}
	return sections
}

func fullDataset(records []models.StudentRecord) export.Dataset {
	headers := make([]string, 0, len(models.FieldTitles)+4)
	headers = append(headers, "Tanggal Registrasi")
	for _, field := range models.FieldTitles {
		headers = append(headers, field.Title)
	}
	headers = append(headers, "Status Validasi", "Catatan Validasi", "Kelengkapan (%)")

	rows := make([]map[string]string, 0, len(records))
	for i := range records {
		r := &records[i]
		row := make(map[string]string, len(headers))
		row["Tanggal Registrasi"] = r.TanggalRegistrasi
		for _, field := range models.FieldTitles {
			row[field.Title] = fieldValue(r, field.Key)
		}
		row["Status Validasi"] = string(r.StatusValidasi)
		if r.CatatanValidasi != nil {
			row["Catatan Validasi"] = *r.CatatanValidasi
		}
		row["Kelengkapan (%)"] = fmt.Sprintf("%.1f", Completeness(r))
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func summaryDataset(records []models.StudentRecord) export.Dataset {
	headers := []string{"Nama Lengkap", "NISN", "Jenis Kelamin", "Tanggal Registrasi", "Status Validasi", "Kelengkapan (%)"}
	rows := make([]map[string]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, map[string]string{
			"Nama Lengkap":       r.NamaLengkap,
			"NISN":               r.NISN,
			"Jenis Kelamin":      r.JenisKelamin,
			"Tanggal Registrasi": r.TanggalRegistrasi,
			"Status Validasi":    string(r.StatusValidasi),
			"Kelengkapan (%)":    fmt.Sprintf("%.1f", Completeness(r)),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func fieldValue(record *models.StudentRecord, key string) string {
	if ptr, ok := record.ScalarField(key); ok {
		return *ptr
	}
	if ptr, ok := record.SetField(key); ok {
		return strings.Join(*ptr, ", ")
	}
	return ""
}

func selectByID(records []models.StudentRecord, ids []string) []models.StudentRecord {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]models.StudentRecord, 0, len(ids))
	for i := range records {
		if wanted[records[i].ID] {
			out = append(out, records[i])
		}
	}
	return out
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
