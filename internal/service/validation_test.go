package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
)

func TestApplyTransitionEveryStateReachable(t *testing.T) {
	states := []models.ValidationStatus{
		models.StatusBelumDiverifikasi,
		models.StatusValid,
		models.StatusResidu,
	}
	for _, from := range states {
		for _, to := range states {
			record := &models.StudentRecord{StatusValidasi: from}
			require.NoError(t, ApplyTransition(record, to, ""))
			assert.Equal(t, to, record.StatusValidasi)
		}
	}
}

func TestApplyTransitionNotePersistsOnlyInResidu(t *testing.T) {
	record := &models.StudentRecord{StatusValidasi: models.StatusBelumDiverifikasi}

	require.NoError(t, ApplyTransition(record, models.StatusResidu, "NIK ganda"))
	require.NotNil(t, record.CatatanValidasi)
	assert.Equal(t, "NIK ganda", *record.CatatanValidasi)

	// Leaving Residu clears the note even when one is supplied.
	require.NoError(t, ApplyTransition(record, models.StatusValid, "sisa catatan"))
	assert.Nil(t, record.CatatanValidasi)
}

func TestApplyTransitionEmptyNoteStoredAsNull(t *testing.T) {
	note := "lama"
	record := &models.StudentRecord{StatusValidasi: models.StatusResidu, CatatanValidasi: &note}

	require.NoError(t, ApplyTransition(record, models.StatusResidu, ""))
	assert.Nil(t, record.CatatanValidasi)
}

func TestApplyTransitionRejectsUnknownStatus(t *testing.T) {
	record := &models.StudentRecord{StatusValidasi: models.StatusValid}
	err := ApplyTransition(record, "Ditolak", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.StatusValid, record.StatusValidasi)
}
