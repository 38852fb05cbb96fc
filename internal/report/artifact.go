package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/phishmodel/internal/model"
)

// WriteModelFile writes m as indented JSON to path, replacing any existing
// file.
//
// Design decision: The content goes to a temporary file in the same
// directory, is synced and then renamed over path. Rename is atomic within
// a filesystem, so a scorer reading model.json sees either the previous
// artifact or the new one, and a failed run leaves the old file intact.
// The temporary file is removed on every error path.
func WriteModelFile(path string, m *model.Model) (err error) {
	if m == nil {
		return ErrNoModel
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary model file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err = NewJSONWriter(tmp, WithPrettyPrint()).WriteModel(m); err != nil {
		_ = tmp.Close() //nolint:errcheck // Write error takes precedence
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // Sync error takes precedence
		return fmt.Errorf("failed to sync model file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close model file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // Artifact is meant to be shared
		return fmt.Errorf("failed to set model file permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move model into place: %w", err)
	}
	return nil
}

// ErrNoModel is returned when a run has no fitted model to export.
var ErrNoModel = errors.New("training run has no fitted model")
