// internal/results/snapshot.go
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "business-lookup/internal/common/errors"
)

// SnapshotWriter writes one pretty-printed JSON file per LLM response.
type SnapshotWriter struct {
	dir string
}

func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{dir: dir}
}

func (w *SnapshotWriter) Init() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return apperrors.NewResultWriteFailedError("snapshot", fmt.Errorf("create results dir: %w", err))
	}
	return nil
}

// Write stores v as llm-results-<unix-ms>.json and returns the path.
func (w *SnapshotWriter) Write(v interface{}, at time.Time) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", apperrors.NewResultWriteFailedError("snapshot", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("llm-results-%d.json", at.UnixMilli()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.NewResultWriteFailedError("snapshot", err)
	}
	return path, nil
}
