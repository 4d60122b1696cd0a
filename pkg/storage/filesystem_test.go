package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadArchiveStore(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewUploadArchive(dir)
	require.NoError(t, err)

	rel, err := archive.Store("data-siswa.xlsx", strings.NewReader("isi berkas"))
	require.NoError(t, err)
	assert.Contains(t, rel, "data-siswa.xlsx")
	assert.Contains(t, rel, time.Now().Format("2006-01"))

	content, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	assert.Equal(t, "isi berkas", string(content))
}

func TestUploadArchiveCleanup(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewUploadArchive(dir)
	require.NoError(t, err)

	rel, err := archive.Store("lama.xlsx", strings.NewReader("x"))
	require.NoError(t, err)

	deleted, err := archive.CleanupOlderThan(-time.Second)
	require.NoError(t, err)
	assert.Contains(t, deleted, rel)

	_, err = os.Stat(filepath.Join(dir, rel))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadArchiveCleanupKeepsRecentFiles(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewUploadArchive(dir)
	require.NoError(t, err)

	rel, err := archive.Store("baru.xlsx", strings.NewReader("x"))
	require.NoError(t, err)

	deleted, err := archive.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	_, err = os.Stat(filepath.Join(dir, rel))
	require.NoError(t, err)
}
