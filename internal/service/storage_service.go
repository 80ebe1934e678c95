package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"wordmine-server/internal/domain"

	"github.com/google/uuid"
)

// TempStorage keeps each upload in its own uniquely named file for the
// lifetime of one request.
type TempStorage struct {
	dir    string
	logger domain.Logger
}

func NewTempStorage(dir string, logger domain.Logger) *TempStorage {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempStorage{
		dir:    dir,
		logger: logger,
	}
}

// SaveUpload writes file to disk. On failure nothing is left behind.
func (s *TempStorage) SaveUpload(file io.Reader, originalName string) (*domain.FileInfo, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(s.dir, "wordmine-"+id+".pdf")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	size, err := io.Copy(f, file)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("Failed to remove partial upload", "path", path, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	s.logger.Debug("Upload stored", "id", id, "size", size, "filename", originalName)
	return &domain.FileInfo{
		ID:       id,
		Filename: originalName,
		Size:     size,
		Path:     path,
	}, nil
}

// CleanupTemporary removes a stored upload. Removing a missing file is not an error.
func (s *TempStorage) CleanupTemporary(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
