// Package storage persists rendered production files, either on the local
// filesystem (served by the API under a static route) or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/podplatform/backend/internal/domain/production"
	"go.uber.org/zap"
)

// LocalFileStore writes files into a directory that the HTTP server exposes
// under baseURL
type LocalFileStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewLocalFileStore creates dir if needed
func NewLocalFileStore(dir, baseURL string, logger *zap.Logger) (*LocalFileStore, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalFileStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Dir returns the directory files are written to
func (s *LocalFileStore) Dir() string {
	return s.dir
}

// Save writes data under name, replacing an earlier file atomically
func (s *LocalFileStore) Save(ctx context.Context, name string, data []byte) (*production.StoredFile, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return nil, fmt.Errorf("move %s into place: %w", name, err)
	}

	s.logger.Debug("Stored production file",
		zap.String("name", name),
		zap.Int("bytes", len(data)))
	return &production.StoredFile{
		Key:  name,
		URL:  s.baseURL + "/" + url.PathEscape(name),
		Size: int64(len(data)),
	}, nil
}

// validateName rejects names that would escape the storage root
func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}

var _ production.FileStore = (*LocalFileStore)(nil)
