package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sekolahku/siswa-admin-api/internal/models"
)

// studentColumns lists the students table columns in declaration order.
// The insert and update statements are derived from this list so the
// wide form schema stays in one place.
var studentColumns = []string{
	"id", "tanggal_registrasi",
	"nama_lengkap", "jenis_kelamin", "nisn", "nis", "nik", "no_kk",
	"tempat_lahir", "tanggal_lahir", "no_registrasi_akta_lahir", "agama",
	"kewarganegaraan", "nama_negara", "berkebutuhan_khusus", "alamat_jalan",
	"rt", "rw", "nama_dusun", "nama_kelurahan_desa", "kecamatan", "kode_pos",
	"tempat_tinggal", "moda_transportasi", "anak_keberapa", "status_anak",
	"punya_kip", "uang_masuk", "sekolah_asal", "tinggi_badan", "berat_badan",
	"lingkar_kepala", "jumlah_saudara_kandung", "jumlah_saudara_tiri",
	"hobi", "cita_cita",
	"nama_ayah", "status_ayah", "nik_ayah", "tahun_lahir_ayah",
	"pendidikan_ayah", "pekerjaan_ayah", "penghasilan_ayah", "berkebutuhan_khusus_ayah",
	"nama_ibu", "status_ibu", "nik_ibu", "tahun_lahir_ibu",
	"pendidikan_ibu", "pekerjaan_ibu", "penghasilan_ibu", "berkebutuhan_khusus_ibu",
	"nama_wali", "nik_wali", "tahun_lahir_wali", "pendidikan_wali",
	"pekerjaan_wali", "penghasilan_wali",
	"nomor_telepon_rumah", "nomor_hp", "email",
	"status_validasi", "catatan_validasi", "created_at", "updated_at",
}

var (
	studentSelectQuery = "SELECT " + strings.Join(studentColumns, ", ") + " FROM students"
	studentInsertQuery = buildStudentInsert()
	studentUpdateQuery = buildStudentUpdate()
)

func buildStudentInsert() string {
	placeholders := make([]string, len(studentColumns))
	for i, col := range studentColumns {
		placeholders[i] = ":" + col
	}
	return fmt.Sprintf("INSERT INTO students (%s) VALUES (%s)",
		strings.Join(studentColumns, ", "), strings.Join(placeholders, ", "))
}

func buildStudentUpdate() string {
	assignments := make([]string, 0, len(studentColumns))
	for _, col := range studentColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		assignments = append(assignments, col+" = :"+col)
	}
	return fmt.Sprintf("UPDATE students SET %s WHERE id = :id", strings.Join(assignments, ", "))
}

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListAll returns the full collection ordered by registration date
// descending, normalized at the storage boundary.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.StudentRecord, error) {
	query := studentSelectQuery + " ORDER BY tanggal_registrasi DESC, created_at DESC"
	var students []models.StudentRecord
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	for i := range students {
		students[i].Normalize()
	}
	return students, nil
}

// FindByID fetches a single record by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	query := studentSelectQuery + " WHERE id = $1"
	var student models.StudentRecord
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	student.Normalize()
	return &student, nil
}

// Insert persists a new record, assigning ID and timestamps.
func (r *StudentRepository) Insert(ctx context.Context, student *models.StudentRecord) error {
	prepareStudentRow(student)
	if _, err := r.db.NamedExecContext(ctx, studentInsertQuery, student); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// Update replaces every form field of an existing record.
func (r *StudentRepository) Update(ctx context.Context, student *models.StudentRecord) error {
	student.Normalize()
	student.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, studentUpdateQuery, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus writes only the validation state and note.
func (r *StudentRepository) UpdateStatus(ctx context.Context, id string, status models.ValidationStatus, catatan *string) error {
	const query = `UPDATE students SET status_validasi = $2, catatan_validasi = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, catatan, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update student status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete permanently removes a record.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BatchWrite applies a heterogeneous list of operations inside a single
// transaction. Any rejected operation rolls back the whole batch.
func (r *StudentRepository) BatchWrite(ctx context.Context, ops []models.BatchOperation) error {
	if len(ops) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin student batch: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	for _, op := range ops {
		switch op.Kind {
		case models.BatchOpCreate:
			prepareStudentRow(op.Record)
			if _, err := tx.NamedExecContext(ctx, studentInsertQuery, op.Record); err != nil {
				return fmt.Errorf("batch create student: %w", err)
			}
		case models.BatchOpUpdate:
			op.Record.Normalize()
			op.Record.UpdatedAt = now
			if _, err := tx.NamedExecContext(ctx, studentUpdateQuery, op.Record); err != nil {
				return fmt.Errorf("batch update student: %w", err)
			}
		case models.BatchOpStatus:
			const query = `UPDATE students SET status_validasi = $2, catatan_validasi = $3, updated_at = $4 WHERE id = $1`
			if _, err := tx.ExecContext(ctx, query, op.ID, op.Status, op.Catatan, now); err != nil {
				return fmt.Errorf("batch update student status: %w", err)
			}
		case models.BatchOpDelete:
			if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = $1", op.ID); err != nil {
				return fmt.Errorf("batch delete student: %w", err)
			}
		default:
			return fmt.Errorf("batch write: unknown operation %q", op.Kind)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student batch: %w", err)
	}
	commit = true
	return nil
}

func prepareStudentRow(student *models.StudentRecord) {
	student.Normalize()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
}
