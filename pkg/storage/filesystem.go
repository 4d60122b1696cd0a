package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// UploadArchive keeps copies of imported workbooks on disk so an operator
// can trace which file produced a given batch of records.
type UploadArchive struct {
	baseDir string
}

// NewUploadArchive ensures the base directory exists and returns a handle.
func NewUploadArchive(baseDir string) (*UploadArchive, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &UploadArchive{baseDir: baseDir}, nil
}

// Store copies the uploaded file into a month-partitioned subdirectory,
// prefixing the original name with a timestamp to avoid collisions. It
// returns the path relative to the base directory.
func (a *UploadArchive) Store(originalName string, r io.Reader) (string, error) {
	now := time.Now()
	rel := filepath.Join(now.Format("2006-01"), fmt.Sprintf("%s-%s", now.Format("20060102-150405"), filepath.Base(originalName)))
	path := filepath.Join(a.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare uploads directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archived upload: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write archived upload: %w", err)
	}
	return rel, nil
}

// CleanupOlderThan removes archived uploads older than the provided TTL and
// returns the removed relative paths.
func (a *UploadArchive) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(a.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(a.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup uploads: %w", err)
	}
	return deleted, nil
}
