package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

// headerKeys maps recognised column headers to canonical field keys.
// Both the display titles of the form and the raw field keys are
// accepted; matching is case-insensitive.
var headerKeys = buildHeaderKeys()

func buildHeaderKeys() map[string]string {
	keys := make(map[string]string, len(models.FieldTitles)*2)
	for _, field := range models.FieldTitles {
		keys[strings.ToLower(field.Title)] = field.Key
		keys[strings.ToLower(field.Key)] = field.Key
	}
	return keys
}

// ParseXLSX reads the first sheet of an uploaded workbook into rows of
// canonical-keyed values. The first row is the header row; columns with
// unrecognised headers are skipped, and cells left empty do not appear
// in the resulting rows at all.
func ParseXLSX(r io.Reader) ([]models.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	// Column index -> canonical key, only for recognised headers.
	columns := make(map[int]string, len(rows[0]))
	for i, header := range rows[0] {
		if key, ok := headerKeys[strings.ToLower(strings.TrimSpace(header))]; ok {
			columns[i] = key
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no recognised columns in header row")
	}

	out := make([]models.ImportRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := models.ImportRow{}
		for i, cell := range cells {
			key, ok := columns[i]
			if !ok {
				continue
			}
			if value := strings.TrimSpace(cell); value != "" {
				row[key] = value
			}
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out, nil
}

// TemplateHeaders returns the header row of the import template, in
// form order.
func TemplateHeaders() []string {
	headers := make([]string, len(models.FieldTitles))
	for i, field := range models.FieldTitles {
		headers[i] = field.Title
	}
	return headers
}
