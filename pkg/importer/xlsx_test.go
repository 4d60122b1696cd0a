package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseXLSXMapsTitlesAndKeys(t *testing.T) {
	// Display titles and raw field keys are both accepted, in any case.
	reader := buildWorkbook(t, [][]interface{}{
		{"Nama Lengkap", "NISN", "hobi"},
		{"Budi Santoso", "0051111111", "Membaca"},
	})

	rows, err := ParseXLSX(reader)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ImportRow{
		"namaLengkap": "Budi Santoso",
		"nisn":        "0051111111",
		"hobi":        "Membaca",
	}, rows[0])
}

func TestParseXLSXSkipsUnrecognisedColumnsAndEmptyCells(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Nama Lengkap", "Kolom Asing", "NISN"},
		{"Budi", "diabaikan", ""},
		{"", "", ""},
		{"Siti", "x", "0052222222"},
	})

	rows, err := ParseXLSX(reader)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Empty cells are absent from the row, not empty strings.
	_, present := rows[0]["nisn"]
	assert.False(t, present)
	assert.Equal(t, "Budi", rows[0]["namaLengkap"])
	assert.Equal(t, "0052222222", rows[1]["nisn"])
}

func TestParseXLSXNoRecognisedColumns(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Kolom A", "Kolom B"},
		{"1", "2"},
	})

	_, err := ParseXLSX(reader)
	require.Error(t, err)
}

func TestParseXLSXHeaderOnly(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Nama Lengkap"},
	})

	rows, err := ParseXLSX(reader)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := ParseXLSX(bytes.NewReader([]byte("bukan workbook")))
	require.Error(t, err)
}

func TestTemplateHeadersFollowFormOrder(t *testing.T) {
	headers := TemplateHeaders()
	require.Len(t, headers, len(models.FieldTitles))
	assert.Equal(t, models.FieldTitles[0].Title, headers[0])
	assert.Equal(t, models.FieldTitles[len(models.FieldTitles)-1].Title, headers[len(headers)-1])
}
