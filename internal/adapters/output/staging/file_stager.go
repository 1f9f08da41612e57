package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"line-knowledge-bot/internal/ports/output"

	"github.com/google/uuid"
)

var _ output.FileStager = (*DiskStager)(nil)

// DiskStager struct - Output adapter staging uploads in a local directory
type DiskStager struct {
	dir string
}

// NewDiskStager func - Create stager, creating dir when missing
func NewDiskStager(dir string) (*DiskStager, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "line-knowledge-bot")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create staging dir %s: %w", dir, err)
	}
	return &DiskStager{dir: dir}, nil
}

// Dir returns the staging directory
func (s *DiskStager) Dir() string {
	return s.dir
}

// Stage func - Copy content into <dir>/<uuid><ext>
func (s *DiskStager) Stage(content io.Reader, ext string) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString()+ext)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write staged file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close staged file: %w", err)
	}
	return path, nil
}

// Remove func - Delete a staged file
func (s *DiskStager) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove staged file %s: %w", path, err)
	}
	return nil
}
