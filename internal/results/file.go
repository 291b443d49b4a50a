// internal/results/file.go
package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"business-lookup/internal/common/config"
	apperrors "business-lookup/internal/common/errors"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/models"
)

// FileSink keeps every record in one JSON array file. Each append reads and
// rewrites the whole file without locking, so concurrent appends may lose
// records.
type FileSink struct {
	dir    string
	path   string
	logger logger.Logger
}

func NewFileSink(dir, file string, log logger.Logger) *FileSink {
	return &FileSink{
		dir:    dir,
		path:   filepath.Join(dir, file),
		logger: log,
	}
}

func (s *FileSink) Name() string {
	return config.BackendFile
}

func (s *FileSink) Path() string {
	return s.path
}

// Init creates the results directory. Safe to call when it already exists.
func (s *FileSink) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), fmt.Errorf("create results dir: %w", err))
	}
	return nil
}

func (s *FileSink) Append(ctx context.Context, record *models.AggregateResponse) error {
	entries, err := s.load()
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}
	entries = append(entries, data)

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return apperrors.NewResultWriteFailedError(s.Name(), err)
	}
	return nil
}

// load returns the stored entries. A missing file is empty; unparseable
// content is discarded with a warning.
func (s *FileSink) load() ([]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		if err == nil {
			err = fmt.Errorf("content is not a JSON array")
		}
		corrupt := apperrors.NewResultCorruptedError(s.path, err)
		s.logger.Warn("Corrupted results file detected, starting fresh", map[string]interface{}{
			"path":  s.path,
			"error": corrupt.Details,
		})
		return []json.RawMessage{}, nil
	}
	return entries, nil
}
