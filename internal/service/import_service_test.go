package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
)

type fakeImportStore struct {
	records  []models.StudentRecord
	listErr  error
	batchErr error
	gotOps   []models.BatchOperation
	writes   int
}

func (f *fakeImportStore) ListAll(ctx context.Context) ([]models.StudentRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeImportStore) BatchWrite(ctx context.Context, ops []models.BatchOperation) error {
	f.writes++
	if f.batchErr != nil {
		return f.batchErr
	}
	f.gotOps = ops
	return nil
}

func newImportService(repo *fakeImportStore) *ImportService {
	svc := NewImportService(repo, nil, nil, 0, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestImportCreatesAndUpdates(t *testing.T) {
	repo := &fakeImportStore{records: []models.StudentRecord{{
		ID:          "s1",
		NISN:        "0051111111",
		NamaLengkap: "Budi",
		Hobi:        "Membaca",
	}}}
	svc := newImportService(repo)

	rows := []models.ImportRow{
		{"nisn": "0051111111", "namaLengkap": "Budi Santoso"},
		{"nisn": "0052222222", "namaLengkap": "Siti Rahayu"},
	}
	summary, err := svc.Import(context.Background(), rows, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)

	require.Len(t, repo.gotOps, 2)

	update := repo.gotOps[0]
	assert.Equal(t, models.BatchOpUpdate, update.Kind)
	assert.Equal(t, "s1", update.ID)
	assert.Equal(t, "Budi Santoso", update.Record.NamaLengkap)
	// Fields absent from the row keep their stored value.
	assert.Equal(t, "Membaca", update.Record.Hobi)

	create := repo.gotOps[1]
	assert.Equal(t, models.BatchOpCreate, create.Kind)
	assert.Equal(t, "Siti Rahayu", create.Record.NamaLengkap)
	assert.Equal(t, "2026-08-15", create.Record.TanggalRegistrasi)
	assert.Equal(t, models.StatusBelumDiverifikasi, create.Record.StatusValidasi)
	assert.Nil(t, create.Record.CatatanValidasi)
}

func TestImportCompoundsRowsForSameRecord(t *testing.T) {
	repo := &fakeImportStore{records: []models.StudentRecord{{ID: "s1", NISN: "0051111111"}}}
	svc := newImportService(repo)

	rows := []models.ImportRow{
		{"nisn": "0051111111", "namaLengkap": "Budi Santoso"},
		{"nisn": "0051111111", "hobi": "Sepak Bola"},
	}
	summary, err := svc.Import(context.Background(), rows, "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Created)

	require.Len(t, repo.gotOps, 1)
	merged := repo.gotOps[0].Record
	assert.Equal(t, "Budi Santoso", merged.NamaLengkap)
	assert.Equal(t, "Sepak Bola", merged.Hobi)
}

func TestImportDuplicateNISNLaterRecordWins(t *testing.T) {
	repo := &fakeImportStore{records: []models.StudentRecord{
		{ID: "s1", NISN: "0051111111", NamaLengkap: "Pertama"},
		{ID: "s2", NISN: "0051111111", NamaLengkap: "Kedua"},
	}}
	svc := newImportService(repo)

	summary, err := svc.Import(context.Background(), []models.ImportRow{
		{"nisn": "0051111111", "hobi": "Catur"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	require.Len(t, repo.gotOps, 1)
	assert.Equal(t, "s2", repo.gotOps[0].ID)
	assert.Equal(t, "Kedua", repo.gotOps[0].Record.NamaLengkap)
}

func TestImportRowWithoutNISNCreates(t *testing.T) {
	repo := &fakeImportStore{records: []models.StudentRecord{{ID: "s1", NISN: ""}}}
	svc := newImportService(repo)

	summary, err := svc.Import(context.Background(), []models.ImportRow{
		{"namaLengkap": "Tanpa NISN"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 0, summary.Updated)
}

func TestImportParsesSetValues(t *testing.T) {
	repo := &fakeImportStore{}
	svc := newImportService(repo)

	_, err := svc.Import(context.Background(), []models.ImportRow{
		{"namaLengkap": "Budi", "berkebutuhanKhusus": "Netra, Daksa , "},
	}, "")
	require.NoError(t, err)

	require.Len(t, repo.gotOps, 1)
	assert.Equal(t, pq.StringArray{"Netra", "Daksa"}, repo.gotOps[0].Record.BerkebutuhanKhusus)
}

func TestImportRejectsEmptyFile(t *testing.T) {
	svc := newImportService(&fakeImportStore{})
	_, err := svc.Import(context.Background(), nil, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportEnforcesRowLimit(t *testing.T) {
	svc := NewImportService(&fakeImportStore{}, nil, nil, 1, nil)
	_, err := svc.Import(context.Background(), []models.ImportRow{
		{"namaLengkap": "A"},
		{"namaLengkap": "B"},
	}, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportRejectedOnBatchFailure(t *testing.T) {
	repo := &fakeImportStore{batchErr: errors.New("constraint violation")}
	svc := newImportService(repo)

	_, err := svc.Import(context.Background(), []models.ImportRow{
		{"namaLengkap": "Budi"},
	}, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrImportRejected.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 1, repo.writes)
}
