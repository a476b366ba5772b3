// Package artifact writes planned report artifacts to the output tree
// under deterministic names.
//
// Every artifact path is {root}/{tag}_{query}_{kind}.{ext}. The mapping is
// pure: rerunning a pipeline against the same output root produces the
// same paths and silently overwrites the previous files, which is the
// intended regeneration behavior.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/eddy/internal/report"
)

// WriteError is a filesystem failure while producing one artifact. It is
// fatal to that artifact only.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("ARTIFACT_WRITE: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWriteError reports whether err is a WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// Writer writes artifacts for one pipeline run.
type Writer struct {
	// Root is the output directory, created on first write if absent.
	Root string

	// Tag is the engine tag prefixed to every file name.
	Tag string
}

// Path returns the deterministic output path for an artifact.
func (w *Writer) Path(a report.Artifact) string {
	return filepath.Join(w.Root, fmt.Sprintf("%s_%s_%s.%s", w.Tag, a.Query, a.Kind, a.Ext))
}

// Write renders the artifact into its deterministic path.
//
// The output root is created if missing (idempotent). An existing file at
// the same path is overwritten without warning. When rendering fails the
// partial file is removed and the render error is returned unwrapped, so
// the caller can distinguish report errors from filesystem errors.
func (w *Writer) Write(a report.Artifact) (string, error) {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return "", &WriteError{Path: w.Root, Err: err}
	}

	path := w.Path(a)
	f, err := os.Create(path)
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	if err := a.Render(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}
