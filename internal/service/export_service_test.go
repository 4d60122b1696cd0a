package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
	"github.com/sekolahku/siswa-admin-api/pkg/export"
	"github.com/sekolahku/siswa-admin-api/pkg/importer"
)

type fakeExportRepo struct {
	records []models.StudentRecord
}

func (f *fakeExportRepo) ListAll(ctx context.Context) ([]models.StudentRecord, error) {
	return f.records, nil
}

func (f *fakeExportRepo) FindByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			clone := f.records[i]
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func exportFixture() []models.StudentRecord {
	return []models.StudentRecord{
		{ID: "s1", NamaLengkap: "Budi Santoso", NISN: "0051111111", TanggalRegistrasi: "2026-01-05", StatusValidasi: models.StatusValid},
		{ID: "s2", NamaLengkap: "Siti Rahayu", NISN: "0052222222", TanggalRegistrasi: "2026-02-10", StatusValidasi: models.StatusBelumDiverifikasi},
	}
}

type fakeSettingsReader struct {
	settings *models.PrintSettings
	err      error
}

func (f *fakeSettingsReader) Get(ctx context.Context) (*models.PrintSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type capturingProfileRenderer struct {
	header    export.ProfileHeader
	signature export.ProfileSignature
}

func (r *capturingProfileRenderer) Render(header export.ProfileHeader, title, subtitle string, sections []export.ProfileSection, signature export.ProfileSignature) ([]byte, error) {
	r.header = header
	r.signature = signature
	return []byte("%PDF-1.4 stub"), nil
}

func newExportService(records []models.StudentRecord) *ExportService {
	svc := NewExportService(&fakeExportRepo{records: records}, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC) }
	return svc
}

// readCSV strips the BOM written for Excel before parsing.
func readCSV(t *testing.T, payload []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))
	rows, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportStudentsCSVCarriesFullSchema(t *testing.T) {
	svc := newExportService(exportFixture())

	file, err := svc.ExportStudents(context.Background(), models.StudentFilter{}, nil, "csv")
	require.NoError(t, err)
	assert.Equal(t, "data-siswa-2026-08-15.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	rows := readCSV(t, file.Payload)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Len(t, header, len(models.FieldTitles)+4)
	assert.Equal(t, "Tanggal Registrasi", header[0])
	assert.Equal(t, "Kelengkapan (%)", header[len(header)-1])
	assert.Contains(t, rows[1], "Budi Santoso")
}

func TestExportStudentsSelectionOverridesFilter(t *testing.T) {
	svc := newExportService(exportFixture())

	// A filter that would match nothing is ignored when ids are given.
	file, err := svc.ExportStudents(context.Background(), models.StudentFilter{Search: "zzz"}, []string{"s2"}, "csv")
	require.NoError(t, err)

	rows := readCSV(t, file.Payload)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "Siti Rahayu")
}

func TestExportStudentsXLSX(t *testing.T) {
	svc := newExportService(exportFixture())

	file, err := svc.ExportStudents(context.Background(), models.StudentFilter{}, nil, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "data-siswa-2026-08-15.xlsx", file.Filename)

	workbook, err := excelize.OpenReader(bytes.NewReader(file.Payload))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Data Siswa")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Tanggal Registrasi", rows[0][0])
}

func TestExportStudentsPDF(t *testing.T) {
	svc := newExportService(exportFixture())

	file, err := svc.ExportStudents(context.Background(), models.StudentFilter{}, nil, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Payload, []byte("%PDF")))
}

func TestExportStudentsUnknownFormat(t *testing.T) {
	svc := newExportService(nil)
	_, err := svc.ExportStudents(context.Background(), models.StudentFilter{}, nil, "docx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportTemplateHeaders(t *testing.T) {
	svc := newExportService(nil)

	file, err := svc.ImportTemplate()
	require.NoError(t, err)
	assert.Equal(t, "template-impor-siswa.xlsx", file.Filename)

	workbook, err := excelize.OpenReader(bytes.NewReader(file.Payload))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Template Impor")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, importer.TemplateHeaders(), rows[0])
}

func TestProfilePDF(t *testing.T) {
	svc := newExportService(exportFixture())

	file, err := svc.ProfilePDF(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "profil-budi-santoso.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Payload, []byte("%PDF")))
}

func TestProfilePDFNotFound(t *testing.T) {
	svc := newExportService(nil)
	_, err := svc.ProfilePDF(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestProfilePDFCarriesPrintSettings(t *testing.T) {
	url := "https://sekolah.example/kop.png"
	year := "2026/2027"
	place := "Cibinong"
	headTitle := "Kepala Sekolah,"
	headName := "Dedi Mulyadi, S.Pd"
	nuptk := "1234567890"

	svc := newExportService(exportFixture())
	svc.settings = &fakeSettingsReader{settings: &models.PrintSettings{
		ID:                  models.PrintSettingsID,
		SchoolLetterheadURL: &url,
		AcademicYear:        &year,
		SignaturePlace:      &place,
		CommitteeHeadTitle:  &headTitle,
		CommitteeHeadName:   &headName,
		CommitteeHeadNUPTK:  &nuptk,
	}}
	svc.letterhead = func(fetched string) ([]byte, string, error) {
		assert.Equal(t, url, fetched)
		return []byte{0x89, 'P', 'N', 'G'}, "PNG", nil
	}
	renderer := &capturingProfileRenderer{}
	svc.profile = renderer

	file, err := svc.ProfilePDF(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "profil-budi-santoso.pdf", file.Filename)

	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, renderer.header.Image)
	assert.Equal(t, "PNG", renderer.header.ImageType)
	assert.Equal(t, year, renderer.header.AcademicYear)
	assert.Equal(t, place, renderer.signature.Place)
	assert.Equal(t, "15 Agustus 2026", renderer.signature.Date)
	assert.Equal(t, headTitle, renderer.signature.Title)
	assert.Equal(t, headName, renderer.signature.Name)
	assert.Equal(t, []string{"NUPTK. 1234567890"}, renderer.signature.IDs)
}

func TestProfilePDFWithoutSettingsKeepsPlainHeader(t *testing.T) {
	svc := newExportService(exportFixture())
	renderer := &capturingProfileRenderer{}
	svc.profile = renderer

	_, err := svc.ProfilePDF(context.Background(), "s1")
	require.NoError(t, err)

	assert.Empty(t, renderer.header.Image)
	assert.Empty(t, renderer.header.AcademicYear)
	assert.Empty(t, renderer.signature.Name)
	assert.Equal(t, "15 Agustus 2026", renderer.signature.Date)
}

func TestProfilePDFLetterheadFailureDegrades(t *testing.T) {
	url := "https://sekolah.example/kop.png"
	name := "Dedi Mulyadi, S.Pd"

	svc := newExportService(exportFixture())
	svc.settings = &fakeSettingsReader{settings: &models.PrintSettings{
		SchoolLetterheadURL: &url,
		CommitteeHeadName:   &name,
	}}
	svc.letterhead = func(string) ([]byte, string, error) {
		return nil, "", assert.AnError
	}
	renderer := &capturingProfileRenderer{}
	svc.profile = renderer

	_, err := svc.ProfilePDF(context.Background(), "s1")
	require.NoError(t, err)

	assert.Empty(t, renderer.header.Image)
	assert.Equal(t, name, renderer.signature.Name)
}
