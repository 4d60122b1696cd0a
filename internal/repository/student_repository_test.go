package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "tanggal_registrasi", "nama_lengkap", "nisn", "status_validasi"}).
		AddRow("s2", "2026-02-10", "Siti", "0052", "Valid").
		AddRow("s1", "2026-01-05", "Budi", "0051", "")
	mock.ExpectQuery("FROM students ORDER BY tanggal_registrasi DESC, created_at DESC").
		WillReturnRows(rows)

	students, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "s2", students[0].ID)
	// Normalization fills defaults at the storage boundary.
	assert.Equal(t, models.StatusBelumDiverifikasi, students[1].StatusValidasi)
	assert.NotNil(t, students[1].BerkebutuhanKhusus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("FROM students WHERE id =").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryInsertAssignsID(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WillReturnResult(sqlmock.NewResult(0, 1))

	student := &models.StudentRecord{NamaLengkap: "Budi Santoso", TanggalRegistrasi: "2026-01-05"}
	require.NoError(t, repo.Insert(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	note := "NIK ganda"
	mock.ExpectExec("UPDATE students SET status_validasi").
		WithArgs("s1", models.StatusResidu, &note, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "s1", models.StatusResidu, &note)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET status_validasi").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.StatusValid, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("DELETE FROM students WHERE id =").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryBatchWriteCommits(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE students SET status_validasi").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM students WHERE id =").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ops := []models.BatchOperation{
		{Kind: models.BatchOpCreate, Record: &models.StudentRecord{NamaLengkap: "Budi"}},
		{Kind: models.BatchOpStatus, ID: "s1", Status: models.StatusValid},
		{Kind: models.BatchOpDelete, ID: "s2"},
	}
	require.NoError(t, repo.BatchWrite(context.Background(), ops))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryBatchWriteRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET status_validasi").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE students SET status_validasi").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	ops := []models.BatchOperation{
		{Kind: models.BatchOpStatus, ID: "s1", Status: models.StatusValid},
		{Kind: models.BatchOpStatus, ID: "s2", Status: models.StatusValid},
	}
	err := repo.BatchWrite(context.Background(), ops)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryBatchWriteEmptyNoop(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	require.NoError(t, repo.BatchWrite(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
